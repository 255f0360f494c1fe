package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHandler(t *testing.T) {
	title := "Summer sale"

	tests := []struct {
		name           string
		body           string
		authorized     bool
		setupMocks     func(svc *MockContentGenerator)
		expectedStatus int
		expectedError  string
	}{
		{
			name:       "success",
			body:       `{"type":"INSTAGRAM_POST","objective":"sales","tone":"playful","theme":"Summer sale"}`,
			authorized: true,
			setupMocks: func(svc *MockContentGenerator) {
				svc.EXPECT().Generate(gomock.Any(), "u1", services.GenerateRequest{
					Type:      models.InstagramPost,
					Objective: "sales",
					Tone:      "playful",
					Theme:     "Summer sale",
				}).Return(&services.GenerateResult{
					Content:          &models.Content{ID: "c1", UserID: "u1", Type: models.InstagramPost, Title: &title, Body: "Hot deals", Status: models.StatusActive},
					GeneratedContent: "Hot deals",
					Balance:          4,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed body",
			body:           `not json`,
			authorized:     true,
			setupMocks:     func(svc *MockContentGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:       "unknown type",
			body:       `{"type":"TIKTOK"}`,
			authorized: true,
			setupMocks: func(svc *MockContentGenerator) {
				svc.EXPECT().Generate(gomock.Any(), "u1", gomock.Any()).
					Return(nil, fmt.Errorf("%w: TIKTOK", services.ErrInvalidContentType))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "no credits",
			body:       `{"type":"BLOG_ARTICLE"}`,
			authorized: true,
			setupMocks: func(svc *MockContentGenerator) {
				svc.EXPECT().Generate(gomock.Any(), "u1", gomock.Any()).Return(nil, services.ErrInsufficientCredits)
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Insufficient credits",
		},
		{
			name:       "provider failure",
			body:       `{"type":"EMAIL_COPY"}`,
			authorized: true,
			setupMocks: func(svc *MockContentGenerator) {
				svc.EXPECT().Generate(gomock.Any(), "u1", gomock.Any()).
					Return(nil, fmt.Errorf("%w: %v", services.ErrGenerationFailed, errors.New("rate limited")))
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "Content generation failed",
		},
		{
			name:           "unauthorized",
			body:           `{"type":"CTA_COPY"}`,
			setupMocks:     func(svc *MockContentGenerator) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tok := NewMockTokener(ctrl)
			if tt.authorized {
				expectAuth(tok)
			} else {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("missing"))
			}
			svc := NewMockContentGenerator(ctrl)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewGenerateHandler(svc, tok).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, rr))
			}
			if rr.Code == http.StatusOK {
				var resp GenerateResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "Hot deals", resp.GeneratedContent)
				assert.Equal(t, int64(4), resp.Credits)
				require.NotNil(t, resp.Content)
				assert.Equal(t, "c1", resp.Content.ID)
				require.NotNil(t, resp.Content.Title)
				assert.Equal(t, "Summer sale", *resp.Content.Title)
			}
		})
	}
}
