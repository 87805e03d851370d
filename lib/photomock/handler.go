// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photomock

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/lightbox-labs/lightbox/lib/clock"
	"github.com/lightbox-labs/lightbox/lib/codec"
	"github.com/lightbox-labs/lightbox/lib/photoapi"
)

// Flickr-compatible failure codes used in "stat":"fail" envelopes.
const (
	codeMissingParameter = 3
	codeInvalidParameter = 100
)

const defaultPerPage = 10

// HandlerConfig configures NewHandler.
type HandlerConfig struct {
	// Store answers the queries. Required.
	Store *Store

	// Latency delays every photo response. Zero responds immediately.
	Latency time.Duration

	// Clock measures Latency. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives one record per request. Nil discards.
	Logger *slog.Logger
}

type handler struct {
	store   *Store
	latency time.Duration
	clock   clock.Clock
	logger  *slog.Logger
}

// NewHandler returns the mock service's HTTP handler. Panics if
// config.Store is nil.
func NewHandler(config HandlerConfig) http.Handler {
	if config.Store == nil {
		panic("photomock: HandlerConfig.Store is required")
	}
	server := &handler{
		store:   config.Store,
		latency: config.Latency,
		clock:   config.Clock,
		logger:  config.Logger,
	}
	if server.clock == nil {
		server.clock = clock.Real()
	}
	if server.logger == nil {
		server.logger = slog.New(slog.DiscardHandler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /photos/search", server.handleSearch)
	mux.HandleFunc("GET /photos", server.handleList)
	mux.HandleFunc("GET /errors/{status}", server.handleError)
	return mux
}

// pageParams are the query parameters shared by both photo endpoints.
type pageParams struct {
	page    int
	perPage int
	format  codec.Format
}

func parsePageParams(request *http.Request) (pageParams, error) {
	query := request.URL.Query()
	params := pageParams{page: 1, perPage: defaultPerPage}

	if value := query.Get("page"); value != "" {
		page, err := strconv.Atoi(value)
		if err != nil || page < 1 {
			return params, fmt.Errorf("page must be a positive integer (got %q)", value)
		}
		params.page = page
	}
	if value := query.Get("per_page"); value != "" {
		perPage, err := strconv.Atoi(value)
		if err != nil || perPage < 1 || perPage > MaxPerPage {
			return params, fmt.Errorf("per_page must be an integer in [1, %d] (got %q)", MaxPerPage, value)
		}
		params.perPage = perPage
	}
	format, err := codec.ParseFormat(query.Get("format"))
	if err != nil {
		return params, err
	}
	params.format = format
	return params, nil
}

func (server *handler) handleSearch(writer http.ResponseWriter, request *http.Request) {
	params, err := parsePageParams(request)
	if err != nil {
		server.writeFail(writer, request, params.format, codeInvalidParameter, err.Error())
		return
	}
	text := request.URL.Query().Get("text")
	if text == "" {
		server.writeFail(writer, request, params.format, codeMissingParameter, `Parameter "text" missing`)
		return
	}
	page, err := server.store.Search(request.Context(), text, params.page, params.perPage)
	server.writePage(writer, request, params, page, err)
}

func (server *handler) handleList(writer http.ResponseWriter, request *http.Request) {
	params, err := parsePageParams(request)
	if err != nil {
		server.writeFail(writer, request, params.format, codeInvalidParameter, err.Error())
		return
	}
	page, err := server.store.List(request.Context(), params.page, params.perPage)
	server.writePage(writer, request, params, page, err)
}

// handleError answers with the status named in the path, so clients
// can exercise their error handling. Statuses outside 400-599 are 404.
func (server *handler) handleError(writer http.ResponseWriter, request *http.Request) {
	status, err := strconv.Atoi(request.PathValue("status"))
	if err != nil || status < 400 || status > 599 {
		status = http.StatusNotFound
	}
	server.logRequest(request, status)
	writeJSONError(writer, status, http.StatusText(status))
}

func (server *handler) writePage(writer http.ResponseWriter, request *http.Request, params pageParams, page photoapi.PhotoPage, err error) {
	if err != nil {
		server.logger.Error("photo query failed", "error", err, "url", request.URL.String())
		server.logRequest(request, http.StatusInternalServerError)
		writeJSONError(writer, http.StatusInternalServerError, "photo query failed")
		return
	}
	if !server.wait(request) {
		return
	}
	server.writeEnvelope(writer, request, params.format, photoapi.Envelope{Photos: &page, Stat: photoapi.StatOK})
}

// writeFail sends a "stat":"fail" envelope with status 200, the way
// Flickr reports bad parameters.
func (server *handler) writeFail(writer http.ResponseWriter, request *http.Request, format codec.Format, code int, message string) {
	if format == "" {
		format = codec.FormatJSON
	}
	server.writeEnvelope(writer, request, format, photoapi.Envelope{
		Stat:    photoapi.StatFail,
		Code:    code,
		Message: message,
	})
}

func (server *handler) writeEnvelope(writer http.ResponseWriter, request *http.Request, format codec.Format, envelope photoapi.Envelope) {
	body, err := codec.Encode(format, envelope)
	if err != nil {
		server.logger.Error("encoding envelope", "error", err)
		server.logRequest(request, http.StatusInternalServerError)
		writeJSONError(writer, http.StatusInternalServerError, "encoding response failed")
		return
	}

	etag := ETag(body)
	header := writer.Header()
	header.Set("ETag", etag)
	header.Set("Cache-Control", "no-cache")
	echoRequestID(writer, request)

	if request.Header.Get("If-None-Match") == etag {
		server.logRequest(request, http.StatusNotModified)
		writer.WriteHeader(http.StatusNotModified)
		return
	}

	header.Set("Content-Type", format.ContentType())
	header.Set("Content-Length", strconv.Itoa(len(body)))
	server.logRequest(request, http.StatusOK)
	writer.WriteHeader(http.StatusOK)
	writer.Write(body)
}

// wait applies the configured latency. Returns false if the client went
// away first.
func (server *handler) wait(request *http.Request) bool {
	if server.latency <= 0 {
		return true
	}
	select {
	case <-server.clock.After(server.latency):
		return true
	case <-request.Context().Done():
		server.logger.Debug("client left during artificial latency", "url", request.URL.String())
		return false
	}
}

func (server *handler) logRequest(request *http.Request, status int) {
	server.logger.Info("request",
		"method", request.Method,
		"url", request.URL.String(),
		"status", status,
		"request_id", request.Header.Get(photoapi.RequestIDHeader),
	)
}

// echoRequestID copies the caller's request ID to the response, minting
// one when the caller sent none.
func echoRequestID(writer http.ResponseWriter, request *http.Request) {
	requestID := request.Header.Get(photoapi.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	writer.Header().Set(photoapi.RequestIDHeader, requestID)
}

func writeJSONError(writer http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(photoapi.ErrorBody{Error: photoapi.ErrorDetail{StatusCode: status, Message: message}})
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(body)
}

// ETag returns the strong entity tag for a response body: a quoted,
// truncated BLAKE3 digest.
func ETag(body []byte) string {
	digest := blake3.Sum256(body)
	return `"` + hex.EncodeToString(digest[:16]) + `"`
}
