package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	dbpkg "github.com/sig-0/bankcaps/storage/sql"
)

var (
	errUnableToFetchBanks = errors.New("unable to fetch banks")
	errUnableToRunQueries = errors.New("unable to run queries")

	errBankNotFound = errors.New("bank not found")
	errInvalidLimit = errors.New("invalid limit")
)

func (s *Server) Banks(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	banks, err := s.storage.ListBanks(r.Context(), dbpkg.DefaultTableName)
	if err != nil {
		s.logger.Debug(
			"unable to fetch banks",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchBanks,
		)

		return
	}

	total := len(banks)

	if limit > 0 && limit < len(banks) {
		banks = banks[:limit]
	}

	writeJSON(w, http.StatusOK, &BanksResponse{
		Results: banks,
		Total:   total,
	})
}

func (s *Server) Bank(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))

	banks, err := s.storage.ListBanks(r.Context(), dbpkg.DefaultTableName)
	if err != nil {
		s.logger.Debug(
			"unable to fetch banks",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchBanks,
		)

		return
	}

	for _, bank := range banks {
		if strings.EqualFold(bank.Name, name) {
			writeJSON(w, http.StatusOK, bank)

			return
		}
	}

	writeError(w, http.StatusNotFound, errBankNotFound)
}

func (s *Server) Queries(w http.ResponseWriter, r *http.Request) {
	queries, err := dbpkg.FixedQueries()
	if err != nil {
		s.logger.Error(
			"unable to load fixed queries",
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToRunQueries)

		return
	}

	resp := &QueriesResponse{
		Results: make([]*QueryResult, 0, len(queries)),
	}

	for _, query := range queries {
		result, err := s.storage.Query(r.Context(), query.Statement)
		if err != nil {
			s.logger.Debug(
				"unable to run query",
				"name", query.Name,
				"err", err,
			)

			writeError(w, http.StatusInternalServerError, errUnableToRunQueries)

			return
		}

		resp.Results = append(resp.Results, &QueryResult{
			Name:      query.Name,
			Statement: query.Statement,
			Result:    result,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func parseLimit(limitRaw string) (int, error) {
	v := strings.TrimSpace(limitRaw)
	if v == "" {
		return 0, nil // no limit
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errInvalidLimit
	}

	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
