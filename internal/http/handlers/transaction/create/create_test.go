package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

type LedgerServiceMock struct {
	mock.Mock
}

func (m *LedgerServiceMock) AddTransaction(ctx context.Context, userUID string, req models.DummyTransaction) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	const userUID = "11111111-2222-3333-4444-555555555555"

	validReq := models.DummyTransaction{
		Amount:   250.0,
		Kind:     "expense",
		Category: "groceries",
		Date:     "2025-03-10",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		withUID        bool
		mockID         int
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid transaction",
			requestBody:    validReq,
			withUID:        true,
			mockID:         7,
			wantStatusCode: http.StatusCreated,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			withUID:        true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - bad kind",
			requestBody:    models.DummyTransaction{Amount: 10, Kind: "transfer", Date: "2025-03-10"},
			withUID:        true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Kind must be one of: income expense",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - non-positive amount",
			requestBody:    models.DummyTransaction{Amount: -5, Kind: "expense", Date: "2025-03-10"},
			withUID:        true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Amount must be greater than 0",
			wantStatus:     "Error",
		},
		{
			name:           "no uid in context",
			requestBody:    validReq,
			withUID:        false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    validReq,
			withUID:        true,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not create transaction",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(LedgerServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockID != 0 || tt.mockErr != nil {
				serviceMock.On("AddTransaction", mock.Anything, userUID, tt.requestBody.(models.DummyTransaction)).
					Return(tt.mockID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUID {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
			}
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			if tt.wantError != "" {
				assert.Contains(t, body["error"], tt.wantError)
			}
			if tt.wantStatus == "OK" {
				data := body["data"].(map[string]any)
				assert.EqualValues(t, 7, data["last_added_id"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
