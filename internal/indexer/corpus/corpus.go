// Package corpus reads document collections and query lists from YAML.
package corpus

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
)

type Document struct {
	ID      int    `yaml:"id"`
	Text    string `yaml:"text"`
	Status  string `yaml:"status"`
	Ratings []int  `yaml:"ratings"`
}

// Corpus is a set of documents to index and queries to run against them.
type Corpus struct {
	StopWords string     `yaml:"stopWords"`
	Documents []Document `yaml:"documents"`
	Queries   []string   `yaml:"queries"`
}

// Adder receives documents. *indexer.Engine implements it.
type Adder interface {
	AddDocument(id int, text string, status index.DocumentStatus, ratings []int) error
}

func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a corpus, rejecting unknown fields and unknown statuses.
func Decode(r io.Reader) (*Corpus, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Corpus
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, err
	}
	for i, d := range c.Documents {
		if _, err := index.ParseStatus(d.Status); err != nil {
			return nil, fmt.Errorf("document %d (entry %d): %w", d.ID, i, err)
		}
	}
	return &c, nil
}

// IndexInto adds every document to dst in file order and stops at the
// first rejected document.
func (c *Corpus) IndexInto(dst Adder) error {
	for _, d := range c.Documents {
		status, err := index.ParseStatus(d.Status)
		if err != nil {
			return err
		}
		if err := dst.AddDocument(d.ID, d.Text, status, d.Ratings); err != nil {
			return fmt.Errorf("adding document %d: %w", d.ID, err)
		}
	}
	return nil
}
