package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/kasuboski/episodez/pkg/logger"
	"go.uber.org/zap"
)

const defaultFallbackExt = ".mkv"

// QBittorrentClient talks to the qBittorrent Web API v2. Authentication is expected to be
// bypassed for the caller's network, e.g. with the local host or subnet whitelist.
type QBittorrentClient struct {
	http        HTTPClient
	scheme      string
	host        string
	mountPrefix string
	fallbackExt string
}

var _ Client = (*QBittorrentClient)(nil)

func NewQBittorrentClient(http HTTPClient, scheme, host, mountPrefix string, port int, fallbackExt string) *QBittorrentClient {
	if fallbackExt == "" {
		fallbackExt = defaultFallbackExt
	}

	return &QBittorrentClient{
		http:        http,
		scheme:      scheme,
		host:        hostWithPort(host, port),
		mountPrefix: mountPrefix,
		fallbackExt: fallbackExt,
	}
}

func (c *QBittorrentClient) Name() string {
	return QBittorrent
}

type QBittorrentPreferences struct {
	SavePath string `json:"save_path"`
}

type QBittorrentTorrent struct {
	Hash     string  `json:"hash"`
	Name     string  `json:"name"`
	SavePath string  `json:"save_path"`
	Progress float64 `json:"progress"`
	Size     int64   `json:"size"`
	State    string  `json:"state"`
}

type QBittorrentFile struct {
	Name     string  `json:"name"`
	Size     int64   `json:"size"`
	Progress float64 `json:"progress"`
}

// List returns an entry per file of every torrent.
// A torrent without a file list is reported as its name plus the fallback extension at 0%.
func (c *QBittorrentClient) List(ctx context.Context) ([]TorrentEntry, error) {
	log := logger.FromCtx(ctx)

	var prefs QBittorrentPreferences
	if err := c.get(ctx, "/api/v2/app/preferences", nil, &prefs); err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var torrents []QBittorrentTorrent
	if err := c.get(ctx, "/api/v2/torrents/info", url.Values{"filter": {"all"}}, &torrents); err != nil {
		return nil, fmt.Errorf("failed to list torrents: %w", err)
	}

	var entries []TorrentEntry
	for _, t := range torrents {
		savePath := t.SavePath
		if savePath == "" {
			savePath = prefs.SavePath
		}

		var files []QBittorrentFile
		if err := c.get(ctx, "/api/v2/torrents/files", url.Values{"hash": {t.Hash}}, &files); err != nil {
			log.Debug("failed to list torrent files", zap.String("torrent", t.Name), zap.Error(err))
		}

		if len(files) == 0 {
			entries = append(entries, TorrentEntry{
				Name:            t.Name,
				Path:            filepath.Join(c.mountPrefix, savePath, t.Name+c.fallbackExt),
				PercentComplete: 0,
				Size:            t.Size,
				Client:          QBittorrent,
			})
			continue
		}

		for _, f := range files {
			entries = append(entries, TorrentEntry{
				Name:            t.Name,
				Path:            filepath.Join(c.mountPrefix, savePath, f.Name),
				PercentComplete: int(100 * f.Progress),
				Size:            f.Size,
				Client:          QBittorrent,
			})
		}
	}

	return entries, nil
}

func (c *QBittorrentClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     path,
		RawQuery: query.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code: %v: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
