package handler

import "github.com/suteetoe/storecatalog/internal/model"

// Summary is the id+name shape used for nested cross-references
type Summary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type StoreResponse struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Items []Summary `json:"items"`
}

type ItemResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Quantity    *int      `json:"quantity,omitempty"`
	Stores      []Summary `json:"stores"`
	Tags        []Summary `json:"tags"`
}

type TagResponse struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Items []Summary `json:"items"`
}

func itemSummaries(items []model.Item) []Summary {
	out := make([]Summary, 0, len(items))
	for _, it := range items {
		out = append(out, Summary{ID: it.ID, Name: it.Name})
	}
	return out
}

func storeSummaries(stores []model.Store) []Summary {
	out := make([]Summary, 0, len(stores))
	for _, s := range stores {
		out = append(out, Summary{ID: s.ID, Name: s.Name})
	}
	return out
}

func tagSummaries(tags []model.Tag) []Summary {
	out := make([]Summary, 0, len(tags))
	for _, t := range tags {
		out = append(out, Summary{ID: t.ID, Name: t.Name})
	}
	return out
}

func newStoreResponse(s *model.Store) StoreResponse {
	return StoreResponse{ID: s.ID, Name: s.Name, Items: itemSummaries(s.Items)}
}

func newItemResponse(it *model.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Quantity:    it.Quantity,
		Stores:      storeSummaries(it.Stores),
		Tags:        tagSummaries(it.Tags),
	}
}

func newTagResponse(t *model.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Items: itemSummaries(t.Items)}
}
