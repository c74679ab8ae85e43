package download

import (
	"context"
	"fmt"
	"net/http"
)

const (
	Transmission = "transmission"
	QBittorrent  = "qbittorrent"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client lists what a download client is currently holding
type Client interface {
	Name() string
	List(ctx context.Context) ([]TorrentEntry, error)
}

// TorrentEntry is one file of a torrent, located where the library can see it
type TorrentEntry struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	PercentComplete int    `json:"percentComplete"`
	Size            int64  `json:"size"`
	Client          string `json:"client"`
}

// Done reports whether the file finished downloading
func (t TorrentEntry) Done() bool {
	return t.PercentComplete >= 100
}

// ClientConfig is how to reach a download client.
// MountPrefix is prepended to paths the client reports so they resolve on this host.
type ClientConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Scheme      string `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`
	Host        string `json:"host" yaml:"host" mapstructure:"host" validate:"required_if=Enabled true"`
	Port        int    `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	MountPrefix string `json:"mountPrefix" yaml:"mountPrefix" mapstructure:"mountPrefix"`
}

// Factory builds clients by implementation name
type Factory interface {
	NewClient(implementation string, config ClientConfig) (Client, error)
}

type ClientFactory struct {
	http        HTTPClient
	fallbackExt string
}

// NewClientFactory returns a factory whose clients share http.
// fallbackExt is used for qBittorrent torrents that have no file list yet.
func NewClientFactory(http HTTPClient, fallbackExt string) ClientFactory {
	return ClientFactory{
		http:        http,
		fallbackExt: fallbackExt,
	}
}

// NewClient returns a download client for the given configuration
func (f ClientFactory) NewClient(implementation string, config ClientConfig) (Client, error) {
	switch implementation {
	case Transmission:
		return NewTransmissionClient(f.http, config.Scheme, config.Host, config.MountPrefix, config.Port), nil
	case QBittorrent:
		return NewQBittorrentClient(f.http, config.Scheme, config.Host, config.MountPrefix, config.Port, f.fallbackExt), nil
	default:
		return nil, fmt.Errorf("unsupported client implementation: %s", implementation)
	}
}

func hostWithPort(host string, port int) string {
	if port != 0 {
		return fmt.Sprintf("%s:%d", host, port)
	}

	return host
}

func percent(done, total int64) int {
	if total <= 0 {
		return 0
	}

	return int(done * 100 / total)
}
