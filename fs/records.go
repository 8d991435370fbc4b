package fs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkrzemien/wixport"
)

// WriteRecords writes the posts as an ordered JSON record list. The file
// is the run's inspectable intermediate artifact: one record per unique
// post URL, in the order given.
func WriteRecords(path string, posts []*wixport.Post) error {
	if posts == nil {
		posts = []*wixport.Post{}
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0644)
}

// ReadRecords reads a record file written by WriteRecords.
func ReadRecords(path string) ([]*wixport.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var posts []*wixport.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return posts, nil
}
