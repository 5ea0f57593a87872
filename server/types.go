package server

import "github.com/sig-0/bankcaps/storage/types"

type BanksResponse struct {
	Results []*types.EnrichedBank `json:"results"`
	Total   int                   `json:"total"`
}

type QueryResult struct {
	Name      string       `json:"name"`
	Statement string       `json:"statement"`
	Result    *types.Table `json:"result"`
}

type QueriesResponse struct {
	Results []*QueryResult `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
