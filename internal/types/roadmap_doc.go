package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RoadmapDoc is the generated curriculum structure: an ordered sequence of
// phases, each with an ordered sequence of topics. The model emits resources
// either as plain strings or as {name, url} objects, so Resource accepts both.
type RoadmapDoc []MajorNode

type MajorNode struct {
	MajorNode string  `json:"MajorNode"`
	Topics    []Topic `json:"Topics"`
}

type Topic struct {
	SubNode     string     `json:"SubNode"`
	Description string     `json:"Description"`
	Resources   []Resource `json:"Resources"`
}

type Resource struct {
	Name string
	URL  string
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.Name = s
		r.URL = ""
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("resource must be a string or a {name, url} object: %w", err)
	}
	r.Name = obj.Name
	r.URL = obj.URL
	return nil
}

func (r Resource) MarshalJSON() ([]byte, error) {
	if r.URL == "" {
		return json.Marshal(r.Name)
	}
	return json.Marshal(struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}{Name: r.Name, URL: r.URL})
}

// Validate checks the shape contract the authoring prompt promises. A doc
// that fails here is rejected rather than persisted.
func (d RoadmapDoc) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("roadmap has no phases")
	}
	for i, node := range d {
		if strings.TrimSpace(node.MajorNode) == "" {
			return fmt.Errorf("phase %d has no name", i)
		}
		if len(node.Topics) == 0 {
			return fmt.Errorf("phase %q has no topics", node.MajorNode)
		}
		for j, topic := range node.Topics {
			if strings.TrimSpace(topic.SubNode) == "" {
				return fmt.Errorf("phase %q topic %d has no name", node.MajorNode, j)
			}
		}
	}
	return nil
}
