// Package services: services/extractor.go
package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"betboard/logger"
)

// BetslipExtractor is the opaque external function that turns a bet
// slip image into structured bet candidates. The real implementation is
// a remote model endpoint; tests use a mock.
type BetslipExtractor interface {
	AnalyzeBetslip(imageBytes []byte) (string, error)
}

// ------------------- image helpers -------------------

// DetectImageFormat sniffs the image format from magic bytes. Returns
// png, jpeg, gif or webp, defaulting to png for anything unknown.
func DetectImageFormat(imageBytes []byte) string {
	if len(imageBytes) < 12 {
		return "png"
	}
	if bytes.HasPrefix(imageBytes, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}) {
		return "png"
	}
	if bytes.HasPrefix(imageBytes, []byte{0xFF, 0xD8, 0xFF}) {
		return "jpeg"
	}
	if bytes.HasPrefix(imageBytes, []byte("GIF87a")) || bytes.HasPrefix(imageBytes, []byte("GIF89a")) {
		return "gif"
	}
	if bytes.HasPrefix(imageBytes, []byte("RIFF")) && len(imageBytes) >= 12 && bytes.Equal(imageBytes[8:12], []byte("WEBP")) {
		return "webp"
	}
	return "png"
}

// looksLikeText reports whether the bytes are printable ASCII rather
// than binary image data — the usual symptom of a double-encoded
// upload.
func looksLikeText(imageBytes []byte) bool {
	n := len(imageBytes)
	if n > 50 {
		n = 50
	}
	for _, b := range imageBytes[:n] {
		if (b < 32 || b > 126) && b != 9 && b != 10 && b != 13 {
			return false
		}
	}
	return n > 0
}

// ValidateImageBytes rejects empty, truncated or text-looking payloads
// before they reach the extractor.
func ValidateImageBytes(imageBytes []byte) error {
	if len(imageBytes) < 12 {
		return invalid("invalid image data: image bytes are empty or too small")
	}
	if looksLikeText(imageBytes) {
		return invalid("image bytes appear to be text data rather than binary image data")
	}
	return nil
}

// DecodeBase64Image decodes a base64 image payload, tolerating a data
// URL prefix like "data:image/png;base64,....".
func DecodeBase64Image(imageBase64 string) ([]byte, error) {
	if strings.HasPrefix(strings.TrimSpace(imageBase64), "data:") {
		if idx := strings.Index(imageBase64, ","); idx >= 0 {
			imageBase64 = imageBase64[idx+1:]
		}
	}
	decoded, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, invalid("invalid base64 image data")
	}
	return decoded, nil
}

// LoadImageFromS3 fetches slip image bytes uploaded ahead of time.
func LoadImageFromS3(bucket, key string) ([]byte, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	out, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// ------------------- HTTP extractor -------------------

// HTTPExtractor calls the external extraction endpoint with the image
// and returns the raw model output. No retries, no timeout: a failed
// call surfaces straight to the user.
type HTTPExtractor struct {
	endpoint string
	client   *http.Client
}

// NewHTTPExtractor reads EXTRACTOR_URL from the environment.
func NewHTTPExtractor() (*HTTPExtractor, error) {
	endpoint := os.Getenv("EXTRACTOR_URL")
	if endpoint == "" {
		return nil, fmt.Errorf("EXTRACTOR_URL environment variable not set")
	}
	return &HTTPExtractor{endpoint: endpoint, client: http.DefaultClient}, nil
}

type extractorRequest struct {
	ImageBase64 string `json:"imageBase64"`
	Format      string `json:"format"`
}

type extractorResponse struct {
	Output string `json:"output"`
}

// AnalyzeBetslip sends the image to the extraction endpoint and returns
// the raw model text output (expected to be a JSON string). The caller
// is responsible for parsing and validating it.
func (e *HTTPExtractor) AnalyzeBetslip(imageBytes []byte) (string, error) {
	if err := ValidateImageBytes(imageBytes); err != nil {
		return "", err
	}
	format := DetectImageFormat(imageBytes)
	logger.Debug.Printf("AnalyzeBetslip: sending %d bytes, format=%s", len(imageBytes), format)

	body, err := json.Marshal(extractorRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(imageBytes),
		Format:      format,
	})
	if err != nil {
		return "", err
	}

	resp, err := e.client.Post(e.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extractor returned status %d", resp.StatusCode)
	}

	var out extractorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("extractor response is not valid JSON: %w", err)
	}
	return out.Output, nil
}
