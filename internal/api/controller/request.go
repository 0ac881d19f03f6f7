package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bassista/go_railops/internal/model"
	"github.com/gin-gonic/gin"
)

// PageNumber is a page or page size. Clients send it either as a JSON number or as a
// numeric string.
type PageNumber int

func (p *PageNumber) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*p = PageNumber(n)
	return nil
}

// value returns 0 when the field was omitted so the service applies its default.
func (p *PageNumber) value(field string) (int, error) {
	if p == nil {
		return 0, nil
	}
	if *p < 1 {
		return 0, fmt.Errorf("%w: %s must be at least 1", model.ErrValidation, field)
	}
	return int(*p), nil
}

type PageRequest struct {
	Hub      string      `json:"hub"`
	Page     *PageNumber `json:"page"`
	PageSize *PageNumber `json:"pageSize"`
}

func (r PageRequest) pages() (page, pageSize int, err error) {
	if page, err = r.Page.value("page"); err != nil {
		return 0, 0, err
	}
	if pageSize, err = r.PageSize.value("pageSize"); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

type HubRequest struct {
	Hub string `json:"hub"`
}

type RoutesRequest struct {
	TrainID string `json:"trainId"`
	Hub     string `json:"hub"`
}

type MaintenanceRequest struct {
	Hub             string `json:"hub"`
	MaintenanceType string `json:"maintenanceType"`
}

type RerouteRequest struct {
	TrainID  string   `json:"trainId"`
	NewRoute []string `json:"newRoute"`
}

type ToggleSpeedRequest struct {
	TrainID string `json:"trainId"`
	Action  string `json:"action"`
}

type EmergencyContactRequest struct {
	Hub     string `json:"hub"`
	Message string `json:"message"`
}

// bindBody binds the JSON body into req. An empty body leaves req at its zero value.
func bindBody(c *gin.Context, req any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body: %v", model.ErrValidation, err)
	}
	return nil
}
