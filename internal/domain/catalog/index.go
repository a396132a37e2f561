package catalog

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// CodeDocument is the searchable projection of one catalog entry.
type CodeDocument struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Tier   string `json:"tier"`
}

// IndexResult is a reference-index hit with its relevance score.
type IndexResult struct {
	Document CodeDocument
	Score    float64
}

// ReferenceIndex provides full-text lookup over the pay-code registry. It
// backs diagnostics and the CLI code-lookup command; the extraction pipeline
// itself never needs it.
type ReferenceIndex struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewReferenceIndex builds an in-memory index over the catalog.
func NewReferenceIndex(c *Catalog) (*ReferenceIndex, error) {
	index, err := bleve.NewMemOnly(buildCodeMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create code index: %w", err)
	}

	batch := index.NewBatch()
	for _, code := range c.AllCodes() {
		doc := CodeDocument{
			Symbol: code.Symbol,
			Name:   code.Name,
			Tier:   code.Tier.String(),
		}
		if err := batch.Index(code.Symbol, doc); err != nil {
			return nil, fmt.Errorf("failed to index code %s: %w", code.Symbol, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to execute batch index: %w", err)
	}

	return &ReferenceIndex{index: index}, nil
}

func buildCodeMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("symbol", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("tier", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// Search runs a match query with one edit of typo tolerance.
func (ri *ReferenceIndex) Search(query string, limit int) ([]IndexResult, error) {
	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetFuzziness(1)
	return ri.run(bleve.NewSearchRequest(matchQuery), limit)
}

// SearchWithPrefix runs an autocomplete-style prefix query over symbols.
func (ri *ReferenceIndex) SearchWithPrefix(prefix string, limit int) ([]IndexResult, error) {
	return ri.run(bleve.NewSearchRequest(bleve.NewPrefixQuery(prefix)), limit)
}

// SearchFuzzy runs a fuzzy query with a configurable edit distance (0-2).
func (ri *ReferenceIndex) SearchFuzzy(query string, fuzziness, limit int) ([]IndexResult, error) {
	if fuzziness < 0 {
		fuzziness = 0
	}
	if fuzziness > 2 {
		fuzziness = 2
	}
	fuzzyQuery := bleve.NewFuzzyQuery(query)
	fuzzyQuery.SetFuzziness(fuzziness)
	return ri.run(bleve.NewSearchRequest(fuzzyQuery), limit)
}

// Close releases the underlying index.
func (ri *ReferenceIndex) Close() error {
	return ri.index.Close()
}

func (ri *ReferenceIndex) run(req *bleve.SearchRequest, limit int) ([]IndexResult, error) {
	ri.mu.RLock()
	defer ri.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	req.Size = limit
	req.Fields = []string{"*"}

	searchResults, err := ri.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("code index search failed: %w", err)
	}

	results := make([]IndexResult, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		doc := CodeDocument{}
		if symbol, ok := hit.Fields["symbol"].(string); ok {
			doc.Symbol = symbol
		}
		if name, ok := hit.Fields["name"].(string); ok {
			doc.Name = name
		}
		if tier, ok := hit.Fields["tier"].(string); ok {
			doc.Tier = tier
		}
		results = append(results, IndexResult{Document: doc, Score: hit.Score})
	}
	return results, nil
}
