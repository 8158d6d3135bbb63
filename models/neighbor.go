package models

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/coder/hnsw"
	"github.com/samber/lo"
)

type LabeledExample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type NearestNeighborInfo struct {
	Embedding struct {
		Type   string                 `json:"type"`
		Config map[string]interface{} `json:"config"`
	} `json:"embedding"`
	Examples []LabeledExample `json:"examples"`
	// ExamplesFile holds label<TAB>text lines, appended to Examples.
	ExamplesFile string `json:"examples_file"`
	K            int    `json:"k"`
}

// NearestNeighborClassifier votes among the k labeled examples whose
// embeddings are closest to the document. Examples must be in the same
// normalized form as the documents passed to Predict.
type NearestNeighborClassifier struct {
	embedder BaseEmbeddingModel
	graph    *hnsw.Graph[int]
	labels   []string
	k        int
}

// NewNearestNeighborClassifier embeds the labeled examples and indexes them in
// an HNSW graph. K defaults to 5.
func NewNearestNeighborClassifier(ctx context.Context, embedder BaseEmbeddingModel, info NearestNeighborInfo) (*NearestNeighborClassifier, error) {
	examples := info.Examples
	if info.ExamplesFile != "" {
		fromFile, err := readExamples(info.ExamplesFile)
		if err != nil {
			return nil, err
		}
		examples = append(examples, fromFile...)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("nearest neighbor classifier: no labeled examples")
	}
	if info.K <= 0 {
		info.K = 5
	}
	vectors, err := embedder.Embed(ctx, lo.Map(examples, func(e LabeledExample, _ int) string {
		return e.Text
	}))
	if err != nil {
		return nil, fmt.Errorf("embed examples: %w", err)
	}
	if len(vectors) != len(examples) {
		return nil, fmt.Errorf("embedding model returned %d embeddings for %d examples", len(vectors), len(examples))
	}
	graph := hnsw.NewGraph[int]()
	graph.Distance = hnsw.CosineDistance
	for i, vector := range vectors {
		graph.Add(hnsw.Node[int]{Key: i, Value: vector})
	}
	return &NearestNeighborClassifier{
		embedder: embedder,
		graph:    graph,
		labels:   lo.Map(examples, func(e LabeledExample, _ int) string { return e.Label }),
		k:        info.K,
	}, nil
}

// Predict labels each document by majority vote of its K nearest examples.
func (c *NearestNeighborClassifier) Predict(ctx context.Context, docs []string) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}
	vectors, err := c.embedder.Embed(ctx, docs)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embedding model returned %d embeddings for %d documents", len(vectors), len(docs))
	}
	out := make([]string, len(docs))
	for i, vector := range vectors {
		out[i] = c.vote(c.graph.Search(vector, c.k))
	}
	return out, nil
}

// vote picks the most frequent label; ties go to the closest neighbor's label.
func (c *NearestNeighborClassifier) vote(neighbors []hnsw.Node[int]) string {
	if len(neighbors) == 0 {
		return ""
	}
	counts := lo.CountValuesBy(neighbors, func(n hnsw.Node[int]) string {
		return c.labels[n.Key]
	})
	best := c.labels[neighbors[0].Key]
	for _, n := range neighbors {
		label := c.labels[n.Key]
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

func readExamples(path string) ([]LabeledExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open examples: %w", err)
	}
	defer f.Close()
	examples := make([]LabeledExample, 0, 64)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		label, text, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected label<TAB>text", path, lineNo)
		}
		examples = append(examples, LabeledExample{Text: text, Label: label})
	}
	return examples, scanner.Err()
}
