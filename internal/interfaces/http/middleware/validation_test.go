package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestCustomDomainValidators(t *testing.T) {
	SetupValidator()

	type testRequest struct {
		Condition string `json:"condition" binding:"omitempty,condition_type"`
		Rotation  string `json:"rotation" binding:"omitempty,rotation_policy"`
		Kind      string `json:"kind" binding:"omitempty,product_kind"`
	}

	v := binding.Validator.Engine().(*validator.Validate)

	tests := []struct {
		name    string
		req     testRequest
		wantErr bool
	}{
		{"valid values", testRequest{Condition: "TEMPERATURE", Rotation: "FIFO", Kind: "FOOD"}, false},
		{"hazardous condition", testRequest{Condition: "HAZARDOUS_MATERIALS"}, false},
		{"fefo rotation", testRequest{Rotation: "FEFO"}, false},
		{"unknown condition", testRequest{Condition: "PRESSURE"}, true},
		{"lowercase rotation", testRequest{Rotation: "fifo"}, true},
		{"unknown kind", testRequest{Kind: "GADGET"}, true},
		{"empty is allowed", testRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	type storeRequest struct {
		Name     string `json:"name" binding:"required"`
		Rotation string `json:"rotation" binding:"required,rotation_policy"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req storeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("reports each failed field with its json name", func(t *testing.T) {
		body := strings.NewReader(`{"rotation": "SOMETIMES", "quantity": 0}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])

		errInfo := resp["error"].(map[string]interface{})
		details := errInfo["details"].([]interface{})
		fields := make(map[string]string)
		for _, d := range details {
			detail := d.(map[string]interface{})
			fields[detail["field"].(string)] = detail["message"].(string)
		}
		assert.Equal(t, "This field is required", fields["name"])
		assert.Equal(t, "Unknown rotation policy", fields["rotation"])
		assert.Contains(t, fields, "quantity")
	})

	t.Run("valid request passes", func(t *testing.T) {
		body := strings.NewReader(`{"name": "canned beans", "rotation": "FIFO", "quantity": 4}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
