package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// AppointmentUpdater writes the completed appointment back to the booking
// backend, which is the source of truth for persistence.
type AppointmentUpdater interface {
	Update(ctx context.Context, appointmentID int64, req *models.AppointmentUpdateRequest) (*models.Appointment, error)
}

var _ AppointmentUpdater = (*HTTPAppointmentClient)(nil)

// HTTPAppointmentClient implements AppointmentUpdater against
// PUT /appointments/{id}.
type HTTPAppointmentClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPAppointmentClient creates a new HTTP-based appointment client.
func NewHTTPAppointmentClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPAppointmentClient {
	return &HTTPAppointmentClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger.Named("appointment-client"),
	}
}

// Update submits the completion payload. On failure nothing is persisted
// locally and the caller keeps its selection for a manual retry.
func (c *HTTPAppointmentClient) Update(ctx context.Context, appointmentID int64, req *models.AppointmentUpdateRequest) (*models.Appointment, error) {
	c.logger.Info("Updating appointment",
		zap.Int64("appointment_id", appointmentID),
		zap.Float64("final_price", req.FinalPrice),
		zap.Int("discount_codes", len(req.MultipleDiscountCodes)),
	)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/appointments/%d", c.baseURL, appointmentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	setHeaders(httpReq, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Appointment update request failed",
			zap.Int64("appointment_id", appointmentID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Appointment update returned error",
			zap.Int64("appointment_id", appointmentID),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, apperrors.NewRemoteError("booking service", resp.StatusCode, "")
	}

	var appt models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appt); err != nil {
		return nil, err
	}

	c.logger.Info("Appointment updated",
		zap.Int64("appointment_id", appt.ID),
		zap.String("status", appt.Status),
	)
	return &appt, nil
}

// MockAppointmentClient is a mock implementation for testing.
type MockAppointmentClient struct {
	Updated map[int64]*models.AppointmentUpdateRequest
	Err     error
}

// NewMockAppointmentClient creates a mock appointment client.
func NewMockAppointmentClient() *MockAppointmentClient {
	return &MockAppointmentClient{
		Updated: make(map[int64]*models.AppointmentUpdateRequest),
	}
}

func (m *MockAppointmentClient) Update(ctx context.Context, appointmentID int64, req *models.AppointmentUpdateRequest) (*models.Appointment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Updated[appointmentID] = req
	return &models.Appointment{
		ID:         appointmentID,
		Status:     req.Status,
		FinalPrice: req.FinalPrice,
		StaffID:    req.StaffID,
	}, nil
}
