package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
)

type TransmissionClient struct {
	http        HTTPClient
	scheme      string
	host        string
	mutex       *sync.Mutex
	session     string
	mountPrefix string
}

type TransmissionRequest struct {
	Arguments any           `json:"arguments"`
	Tag       *int          `json:"tag,omitempty"`
	Method    torrentMethod `json:"method"`
}

type torrentMethod string

const (
	GetTorrentMethod torrentMethod = "torrent-get"
)

var _ Client = (*TransmissionClient)(nil)

func NewTransmissionClient(http HTTPClient, scheme, host, mountPrefix string, port int) *TransmissionClient {
	return &TransmissionClient{
		http:        http,
		scheme:      scheme,
		host:        hostWithPort(host, port),
		mutex:       new(sync.Mutex),
		session:     "",
		mountPrefix: mountPrefix,
	}
}

func (c *TransmissionClient) Name() string {
	return Transmission
}

type TransmissionTorrent struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	HashString  string             `json:"hashString"`
	DownloadDir string             `json:"downloadDir"`
	Files       []TransmissionFile `json:"files"`
	PercentDone float64            `json:"percentDone"`
	TotalSize   int64              `json:"totalSize"`
	Status      int                `json:"status"`
}

type TransmissionFile struct {
	Name           string `json:"name"`
	Length         int64  `json:"length"`
	BytesCompleted int64  `json:"bytesCompleted"`
}

// ToEntries returns an entry per file. File names are relative to the download dir.
// A torrent still fetching metadata has no files and is reported by its name.
func (t *TransmissionTorrent) ToEntries(mountPrefix string) []TorrentEntry {
	if len(t.Files) == 0 {
		return []TorrentEntry{{
			Name:            t.Name,
			Path:            filepath.Join(mountPrefix, t.DownloadDir, t.Name),
			PercentComplete: int(t.PercentDone * 100),
			Size:            t.TotalSize,
			Client:          Transmission,
		}}
	}

	entries := make([]TorrentEntry, 0, len(t.Files))
	for _, f := range t.Files {
		entries = append(entries, TorrentEntry{
			Name:            t.Name,
			Path:            filepath.Join(mountPrefix, t.DownloadDir, f.Name),
			PercentComplete: percent(f.BytesCompleted, f.Length),
			Size:            f.Length,
			Client:          Transmission,
		})
	}

	return entries
}

type TransmissionListTorrentsResponse struct {
	Result    string      `json:"result"`
	Arguments TorrentList `json:"arguments"`
}

func (r TransmissionListTorrentsResponse) ToEntries(mountPrefix string) []TorrentEntry {
	var entries []TorrentEntry
	for _, t := range r.Arguments.Torrents {
		entries = append(entries, t.ToEntries(mountPrefix)...)
	}

	return entries
}

type TorrentList struct {
	Torrents []TransmissionTorrent `json:"torrents"`
}

var torrentFields = []string{
	"id",
	"name",
	"hashString",
	"downloadDir",
	"files",
	"percentDone",
	"totalSize",
	"status",
}

// List fetches every file of every torrent
func (c *TransmissionClient) List(ctx context.Context) ([]TorrentEntry, error) {
	arguments := make(map[string]any)
	arguments["fields"] = torrentFields

	request := &TransmissionRequest{
		Method:    GetTorrentMethod,
		Arguments: arguments,
	}

	b, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	url := url.URL{
		Host:   c.host,
		Scheme: c.scheme,
		Path:   "/transmission/rpc",
	}

	b, err = c.do(ctx, &url, b)
	if err != nil {
		return nil, err
	}

	var response TransmissionListTorrentsResponse
	err = json.Unmarshal(b, &response)
	if err != nil {
		return nil, err
	}

	if response.Result != "success" {
		return nil, fmt.Errorf("unexpected result: %v", response.Result)
	}

	return response.ToEntries(c.mountPrefix), nil
}

const (
	sessionHeader = "x-transmission-session-id"
)

func (c *TransmissionClient) do(ctx context.Context, url *url.URL, body []byte, retry ...bool) ([]byte, error) {
	if c.http == nil {
		return nil, errors.New("http client is nil")
	}

	if url == nil {
		return nil, errors.New("url is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(sessionHeader, c.getSessionID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	// need to get a new session id from the response if 409
	case http.StatusConflict:
		// one refresh per call
		if len(retry) != 0 && retry[0] {
			return nil, errors.New("session id is invalid after retry")
		}

		session := resp.Header.Get(sessionHeader)
		if session == "" {
			return nil, errors.New("session id is empty")
		}

		c.setSessionID(session)
		return c.do(ctx, url, body, true)

	case http.StatusOK:
		return io.ReadAll(resp.Body)

	default:
		return nil, fmt.Errorf("unexpected status code: %v", resp.Status)
	}
}

func (c *TransmissionClient) setSessionID(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.session = id
}

func (c *TransmissionClient) getSessionID() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.session
}
