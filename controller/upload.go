package controller

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadUploadedReviews extracts reviews from an uploaded file. A .csv file has
// a header row and the review in its first column; a .txt file has one review
// per line, with anything after the first tab ignored.
func ReadUploadedReviews(filename string, r io.Reader) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSVReviews(r)
	case ".txt":
		return readTextReviews(r)
	}
	return nil, fmt.Errorf("unsupported file type %q, expected .csv or .txt", filepath.Ext(filename))
}

func readCSVReviews(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	reviews := make([]string, 0, 64)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(record) > 0 && strings.TrimSpace(record[0]) != "" {
			reviews = append(reviews, record[0])
		}
	}
	return reviews, nil
}

func readTextReviews(r io.Reader) ([]string, error) {
	reviews := make([]string, 0, 64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		review, _, _ := strings.Cut(strings.TrimSuffix(scanner.Text(), "\r"), "\t")
		if strings.TrimSpace(review) != "" {
			reviews = append(reviews, review)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return reviews, nil
}
