package dashboard

import (
	"os"

	"github.com/spf13/viper"
)

// Config holds the dashboard identity and deployment metadata, all sourced
// from environment variables. Deployment fields are populated in-cluster via
// the Kubernetes Downward API.
type Config struct {
	StudentName    string
	GitHubUsername string
	GitHubRepo     string
	Bio            string
	LinkedInURL    string
	WebsiteURL     string

	AppVersion  string
	Environment string

	PodName      string
	PodNamespace string
	PodIP        string
	NodeName     string

	Port int
}

// LoadConfig reads the dashboard configuration from the environment, applying
// defaults for anything unset.
func LoadConfig() Config {
	v := viper.New()
	v.AutomaticEnv()

	hostname, _ := os.Hostname()

	v.SetDefault("STUDENT_NAME", "Your Name")
	v.SetDefault("GITHUB_USERNAME", "your-github-username")
	v.SetDefault("GITHUB_REPO", "devsecops-portfolio-template")
	v.SetDefault("BIO", "DevOps engineer building secure, automated infrastructure.")
	v.SetDefault("LINKEDIN_URL", "")
	v.SetDefault("WEBSITE_URL", "")
	v.SetDefault("APP_VERSION", "local")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("POD_NAME", hostname)
	v.SetDefault("POD_NAMESPACE", "unknown")
	v.SetDefault("POD_IP", "unknown")
	v.SetDefault("NODE_NAME", "unknown")
	v.SetDefault("PORT", 5000)

	return Config{
		StudentName:    v.GetString("STUDENT_NAME"),
		GitHubUsername: v.GetString("GITHUB_USERNAME"),
		GitHubRepo:     v.GetString("GITHUB_REPO"),
		Bio:            v.GetString("BIO"),
		LinkedInURL:    v.GetString("LINKEDIN_URL"),
		WebsiteURL:     v.GetString("WEBSITE_URL"),
		AppVersion:     v.GetString("APP_VERSION"),
		Environment:    v.GetString("ENVIRONMENT"),
		PodName:        v.GetString("POD_NAME"),
		PodNamespace:   v.GetString("POD_NAMESPACE"),
		PodIP:          v.GetString("POD_IP"),
		NodeName:       v.GetString("NODE_NAME"),
		Port:           v.GetInt("PORT"),
	}
}
