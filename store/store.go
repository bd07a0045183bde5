// Package store connects to the data store and manages saved game results
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/cogbench/cogbench/internal/timeutil"
	"github.com/cogbench/cogbench/trial"
)

var pathToDB string

var errAlreadyRunning = errors.New(
	"is cogbench already running? Only one instance can be active at a time",
)

const resultsBucket = "results"

// Result is one completed game run as persisted: the full trial record
// together with the summary computed at completion.
type Result struct {
	Session trial.Session `json:"session"`
	Summary trial.Summary `json:"summary"`
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) SaveResult(res *Result) error {
	key := timeutil.ToKey(res.Session.StartTime)

	value, err := json.Marshal(res)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(resultsBucket)).Put(key, value)
	})
}

func (c *Client) DeleteResults(results []Result) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range results {
			key := timeutil.ToKey(results[i].Session.StartTime)

			err := tx.Bucket([]byte(resultsBucket)).Delete(key)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

func (c *Client) GetResults(
	startTime, endTime time.Time,
	games []trial.GameID,
) ([]Result, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(resultsBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		for k, v := c.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = c.Next() {
			// Filter out games that don't match
			if len(games) != 0 {
				var res Result

				err := json.Unmarshal(v, &res)
				if err != nil {
					return err
				}

				if slices.Contains(games, res.Session.GameID) {
					b = append(b, v)
				}
			} else {
				b = append(b, v)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(b))

	for _, v := range b {
		var res Result

		err = json.Unmarshal(v, &res)
		if err != nil {
			return nil, err
		}

		results = append(results, res)
	}

	return results, err
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(resultsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
