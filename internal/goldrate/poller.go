package goldrate

import (
	"context"
	"log"
	"time"

	"github.com/sajith/panchangam/internal/store"
)

// Poller periodically fetches the gold rate and records it. Gold rates
// change at most a few times a day, so the default interval is generous.
type Poller struct {
	store    *store.Store
	client   *Client
	interval time.Duration
}

func NewPoller(st *store.Store, client *Client) *Poller {
	return &Poller{
		store:    st,
		client:   client,
		interval: 1 * time.Hour,
	}
}

func (p *Poller) Run(ctx context.Context) {
	p.fetchOnce()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("goldrate: shutting down")
			return
		case <-ticker.C:
			p.fetchOnce()
		}
	}
}

// FetchOnce fetches and stores a single rate, for --fetch-once runs.
func (p *Poller) FetchOnce() error {
	rate, err := p.client.Fetch()
	if err != nil {
		return err
	}
	return p.store.InsertGoldRate(*rate)
}

func (p *Poller) fetchOnce() {
	if err := p.FetchOnce(); err != nil {
		log.Printf("goldrate: fetch: %v", err)
		return
	}
	log.Println("goldrate: rate stored")
}
