package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"tasker/internal/config"
)

const (
	// DriveScope grants access to the application's hidden app-data folder only.
	DriveScope = drive.DriveAppdataScope

	appDataFolder = "appDataFolder"
)

// Drive stores each key as a JSON file in the Google Drive app-data folder
// of the logged-in user.
type Drive struct {
	svc *drive.Service
	ids map[string]string // key -> file ID
}

// NewDrive creates a Drive store from the OAuth client and token files in
// the config directory. Requires a prior `tasker login`.
func NewDrive(ctx context.Context, cfg *config.Config) (*Drive, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewDriveWithHTTPClient(ctx, httpClient)
}

// NewDriveWithHTTPClient creates a Drive store over a custom HTTP client
// (for testing, usually with option.WithEndpoint).
func NewDriveWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Drive, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Drive{svc: svc, ids: make(map[string]string)}, nil
}

// Get implements Store.
func (s *Drive) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	id, err := s.lookup(ctx, key)
	if err != nil {
		return "", false, err
	}
	if id == "" {
		return "", false, nil
	}

	resp, err := s.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return "", false, wrapDriveError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, wrapDriveError(err)
	}
	return string(data), true, nil
}

// Set implements Store.
func (s *Drive) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	id, err := s.lookup(ctx, key)
	if err != nil {
		return err
	}

	if id != "" {
		_, err = s.svc.Files.Update(id, &drive.File{}).
			Media(strings.NewReader(value)).
			Context(ctx).
			Do()
		return wrapDriveError(err)
	}

	f, err := s.svc.Files.Create(&drive.File{
		Name:     fileName(key),
		Parents:  []string{appDataFolder},
		MimeType: "application/json",
	}).Media(strings.NewReader(value)).Fields("id").Context(ctx).Do()
	if err != nil {
		return wrapDriveError(err)
	}
	s.ids[key] = f.Id
	return nil
}

// Close implements Store.
func (s *Drive) Close() error { return nil }

// lookup returns the file ID holding key, or "" when there is none.
func (s *Drive) lookup(ctx context.Context, key string) (string, error) {
	if id, ok := s.ids[key]; ok {
		return id, nil
	}

	q := fmt.Sprintf("name = '%s' and trashed = false", escapeQuery(fileName(key)))
	resp, err := s.svc.Files.List().
		Spaces(appDataFolder).
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapDriveError(err)
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	s.ids[key] = resp.Files[0].Id
	return resp.Files[0].Id, nil
}

func fileName(key string) string {
	return key + ".json"
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// wrapDriveError wraps API errors with user-friendly messages.
func wrapDriveError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: tasker login)")
	}

	return err
}
