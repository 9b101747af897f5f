package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"microcourses/config"
)

// NotifyCertificateIssued posts a certificate-issued event to the configured
// webhook URL. Failures are logged and never surfaced to the request path.
func NotifyCertificateIssued(userID, courseID uint, certificateHash string) {
	if config.AppConfig == nil || config.AppConfig.CertWebhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":           "certificate.issued",
			"userId":          userID,
			"courseId":        courseID,
			"certificateHash": certificateHash,
			"issuedAt":        time.Now().UTC().Format(time.RFC3339),
		}).
		Post(config.AppConfig.CertWebhookURL)
	if err != nil {
		log.Printf("Certificate webhook failed: %v", err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("Certificate webhook rejected (%d): %s", resp.StatusCode(), resp.String())
	}
}
