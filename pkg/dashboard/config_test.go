package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/dashboard"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg := dashboard.LoadConfig()

	assert.Equal(t, "Your Name", cfg.StudentName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("STUDENT_NAME", "Ada Lovelace")
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")

	cfg := dashboard.LoadConfig()

	assert.Equal(t, "Ada Lovelace", cfg.StudentName)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
}
