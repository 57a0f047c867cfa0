package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cassiohm/mediafeed/aggregator"
	"github.com/cassiohm/mediafeed/logging"
	"github.com/cassiohm/mediafeed/metadata"
	"github.com/cassiohm/mediafeed/monitoring"
	"github.com/cassiohm/mediafeed/schema"
	"github.com/cassiohm/mediafeed/search"
)

const cacheLabel = "results"

type StreamsResponse struct {
	Streams []schema.Stream `json:"streams"`
	Count   int             `json:"count"`
}

// Handler wires the pipeline behind the HTTP surface.
type Handler struct {
	searcher *search.Client
	metadata *metadata.Client
	cache    *aggregator.Cache
	metrics  *monitoring.Metrics
}

func NewHandler(searcher *search.Client, meta *metadata.Client, cache *aggregator.Cache, metrics *monitoring.Metrics) *Handler {
	return &Handler{
		searcher: searcher,
		metadata: meta,
		cache:    cache,
		metrics:  metrics,
	}
}

// HandlerStreams resolves an id into a sorted stream list: metadata lookup,
// cache check, feed search, grouping, caching, presentation.
// Query params: id (required), type (movie|series), season, episode.
func (h *Handler) HandlerStreams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'id' is required")
		return
	}

	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "movie"
	}
	kind := schema.KindMovie
	if mediaType == "series" {
		kind = schema.KindSeries
	}

	season, episode := 0, 0
	if kind == schema.KindSeries {
		season, _ = strconv.Atoi(r.URL.Query().Get("season"))
		episode, _ = strconv.Atoi(r.URL.Query().Get("episode"))
		if season <= 0 || episode <= 0 {
			writeError(w, http.StatusBadRequest, "series requests need positive 'season' and 'episode'")
			return
		}
	}

	// A metadata failure never blocks resolution; the search term falls
	// back to the identifier.
	meta, err := h.metadata.GetMetadata(ctx, id, mediaType)
	if err != nil {
		logging.Warn().Err(err).Str("id", id).Msg("Metadata lookup failed, falling back to identifier term")
		meta = nil
	}
	term := metadata.SearchTerm(meta, id, season, episode)

	results, hit := h.lookupCached(meta, id, kind, season, episode)
	if hit {
		if h.metrics != nil {
			h.metrics.CacheHits.WithLabelValues(cacheLabel).Inc()
		}
	} else {
		if h.metrics != nil {
			h.metrics.CacheMisses.WithLabelValues(cacheLabel).Inc()
		}

		all := h.searcher.Search(ctx, term)
		contents := aggregator.Group(all, kind)
		aggregator.SortContentsByYear(contents)
		h.cache.StoreContents(contents)

		results, _ = h.lookupCached(meta, id, kind, season, episode)
	}

	writeJSON(w, StreamsResponse{
		Streams: aggregator.Streams(results),
		Count:   len(results),
	})
}

// lookupCached tries the derived content keys for the request. Movie keys
// carry the year when the collaborator knows it, so the bare-title key is
// tried as well.
func (h *Handler) lookupCached(meta *metadata.Metadata, id string, kind schema.ContentKind, season, episode int) ([]schema.Result, bool) {
	for _, key := range candidateKeys(meta, id, kind, season, episode) {
		if results, ok := h.cache.Lookup(key); ok {
			return results, true
		}
	}
	return nil, false
}

func candidateKeys(meta *metadata.Metadata, id string, kind schema.ContentKind, season, episode int) []string {
	title := id
	year := 0
	if meta != nil && meta.Title != "" {
		title = meta.Title
		year = meta.Year
	}

	if kind == schema.KindSeries {
		return []string{aggregator.Key(schema.Result{Title: title, Season: season, Episode: episode})}
	}

	keys := []string{aggregator.Key(schema.Result{Title: title, Year: year})}
	if year > 0 {
		keys = append(keys, aggregator.Key(schema.Result{Title: title}))
	}
	return keys
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode error response")
	}
}
