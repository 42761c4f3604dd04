package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CloudinaryUploader uploads through Cloudinary's signed REST API.
type CloudinaryUploader struct {
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

type CloudinaryConfig struct {
	BaseURL   string // defaults to the public API host
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

func NewCloudinaryUploader(cfg CloudinaryConfig) *CloudinaryUploader {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com/v1_1"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CloudinaryUploader{
		baseURL:    baseURL,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

func (u *CloudinaryUploader) Upload(ctx context.Context, files []File) ([]Asset, error) {
	assets := make([]Asset, 0, len(files))
	for _, f := range files {
		asset, err := u.uploadOne(ctx, f)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (u *CloudinaryUploader) uploadOne(ctx context.Context, f File) (Asset, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", f.Name)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return Asset{}, fmt.Errorf("failed to write upload form: %w", err)
	}
	_ = writer.WriteField("api_key", u.apiKey)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("signature", u.sign("timestamp="+timestamp))
	if err := writer.Close(); err != nil {
		return Asset{}, fmt.Errorf("failed to finish upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/auto/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Asset{}, fmt.Errorf("%w: media host returned %d", ErrUpstream, resp.StatusCode)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Asset{}, fmt.Errorf("%w: bad media host response: %v", ErrUpstream, err)
	}

	return Asset{
		URL:      decoded.SecureURL,
		PublicID: decoded.PublicID,
		BlurHash: BlurDataURL(decoded.SecureURL),
	}, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", u.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", u.sign("public_id="+publicID+"&timestamp="+timestamp))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: media host returned %d", ErrUpstream, resp.StatusCode)
	}
	return nil
}

// Cloudinary signs the sorted request params followed by the secret.
func (u *CloudinaryUploader) sign(params string) string {
	sum := sha1.Sum([]byte(params + u.apiSecret))
	return hex.EncodeToString(sum[:])
}

// BlurDataURL derives the tiny blurred placeholder from a delivery
// URL. The transform itself happens on the host; this is a pure
// function of the URL. Cloudinary takes transforms as a path segment
// after /upload/; any other URL shape gets query parameters instead.
func BlurDataURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	const marker = "/upload/"
	if i := strings.Index(imageURL, marker); i >= 0 {
		return imageURL[:i+len(marker)] + "w_10,q_10,e_blur:1000/" + imageURL[i+len(marker):]
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	q := parsed.Query()
	q.Set("w", "10")
	q.Set("q", "10")
	q.Set("blur", "1000")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
