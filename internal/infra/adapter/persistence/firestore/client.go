// Package firestore implements the repository interfaces on Google Cloud
// Firestore. Each entity collection gets its own repository sharing one
// underlying client; counter mutations run as Firestore transactions so
// the global stats document can never drift from entity existence.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// Collection and document names.
const (
	adsCollection          = "ads"
	competitionsCollection = "competitions"
	immigrationCollection  = "immigration"
	articlesCollection     = "articles"
	reviewsCollection      = "reviews"
	usersCollection        = "users"
	savedAdsCollection     = "savedAds"
	reportsCollection      = "reports"
	contactsCollection     = "contacts"
	statsCollection        = "stats"
	statsDocument          = "general"
)

// Client wraps the Firestore connection shared by all repositories.
type Client struct {
	fs *firestore.Client
}

// New connects to Firestore for the given project.
func New(ctx context.Context, projectID string) (*Client, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return &Client{fs: fs}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.fs.Close()
}

// Ping verifies connectivity by reading the stats document. Used by the
// readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.stats().Get(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

func (c *Client) ads() *firestore.CollectionRef {
	return c.fs.Collection(adsCollection)
}

func (c *Client) competitions() *firestore.CollectionRef {
	return c.fs.Collection(competitionsCollection)
}

func (c *Client) immigration() *firestore.CollectionRef {
	return c.fs.Collection(immigrationCollection)
}

func (c *Client) articles() *firestore.CollectionRef {
	return c.fs.Collection(articlesCollection)
}

func (c *Client) reviews() *firestore.CollectionRef {
	return c.fs.Collection(reviewsCollection)
}

func (c *Client) users() *firestore.CollectionRef {
	return c.fs.Collection(usersCollection)
}

func (c *Client) savedAds(userID string) *firestore.CollectionRef {
	return c.users().Doc(userID).Collection(savedAdsCollection)
}

func (c *Client) reports() *firestore.CollectionRef {
	return c.fs.Collection(reportsCollection)
}

func (c *Client) contacts() *firestore.CollectionRef {
	return c.fs.Collection(contactsCollection)
}

// stats returns the single global counters document.
func (c *Client) stats() *firestore.DocumentRef {
	return c.fs.Collection(statsCollection).Doc(statsDocument)
}
