package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wishwell/wishwell/internal/database"
	"github.com/wishwell/wishwell/internal/models"
	"github.com/wishwell/wishwell/internal/scraper"
)

// Extractor is the scraping pipeline as seen by the HTTP layer.
type Extractor interface {
	ExtractProductInfo(ctx context.Context, url string) models.ProductInfo
	ImportAmazonWishlist(ctx context.Context, url string) ([]models.WishlistItem, error)
}

// WishlistStore persists wishlists and their items.
type WishlistStore interface {
	CreateWishlist(ctx context.Context, name, description string) (*database.Wishlist, error)
	GetWishlist(ctx context.Context, id uuid.UUID) (*database.Wishlist, error)
	ListWishlists(ctx context.Context) ([]database.Wishlist, error)
	DeleteWishlist(ctx context.Context, id uuid.UUID) error
	InsertItems(ctx context.Context, wishlistID uuid.UUID, items []models.WishlistItem) (int, error)
	ListItems(ctx context.Context, wishlistID uuid.UUID) ([]database.Item, error)
	MarkPurchased(ctx context.Context, itemID uuid.UUID, count int) (*database.Item, error)
}

// ProductCache fronts the extractor for repeated preview requests. May be
// nil when no cache is configured.
type ProductCache interface {
	Get(ctx context.Context, url string) (models.ProductInfo, bool)
	Set(ctx context.Context, url string, info models.ProductInfo)
}

type Handlers struct {
	extractor Extractor
	store     WishlistStore
	cache     ProductCache
	logger    *slog.Logger
}

func NewHandlers(extractor Extractor, store WishlistStore, cache ProductCache, logger *slog.Logger) *Handlers {
	return &Handlers{
		extractor: extractor,
		store:     store,
		cache:     cache,
		logger:    logger.With("component", "api"),
	}
}

type PreviewRequest struct {
	URL string `json:"url"`
}

// PreviewProduct extracts product info for a user-entered URL. The
// response is always 200 with best-effort fields; a blocked or empty
// result tells the client to offer manual entry.
func (h *Handlers) PreviewProduct(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	if h.cache != nil {
		if info, ok := h.cache.Get(r.Context(), req.URL); ok {
			h.respondJSON(w, http.StatusOK, info)
			return
		}
	}

	info := h.extractor.ExtractProductInfo(r.Context(), req.URL)

	// A timed-out fetch is transient; caching it would pin the failure.
	if h.cache != nil && !info.TimedOut {
		h.cache.Set(r.Context(), req.URL, info)
	}

	h.respondJSON(w, http.StatusOK, info)
}

type CreateWishlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handlers) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	var req CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	wishlist, err := h.store.CreateWishlist(r.Context(), req.Name, req.Description)
	if err != nil {
		h.logger.Error("failed to create wishlist", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create wishlist")
		return
	}

	h.respondJSON(w, http.StatusCreated, wishlist)
}

func (h *Handlers) GetWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	wishlist, err := h.store.GetWishlist(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "wishlist not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get wishlist", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get wishlist")
		return
	}

	h.respondJSON(w, http.StatusOK, wishlist)
}

func (h *Handlers) ListWishlists(w http.ResponseWriter, r *http.Request) {
	wishlists, err := h.store.ListWishlists(r.Context())
	if err != nil {
		h.logger.Error("failed to list wishlists", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list wishlists")
		return
	}

	if wishlists == nil {
		wishlists = []database.Wishlist{}
	}
	h.respondJSON(w, http.StatusOK, wishlists)
}

func (h *Handlers) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	err := h.store.DeleteWishlist(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "wishlist not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete wishlist", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to delete wishlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	items, err := h.store.ListItems(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	if items == nil {
		items = []database.Item{}
	}
	h.respondJSON(w, http.StatusOK, items)
}

type ImportRequest struct {
	URL string `json:"url"`
}

type ImportResponse struct {
	Imported int                   `json:"imported"`
	Items    []models.WishlistItem `json:"items"`
	Hint     string                `json:"hint,omitempty"`
}

// ImportWishlist scrapes an Amazon wishlist and stores its items. Fetch
// failures surface to the user since import is an explicit action.
func (h *Handlers) ImportWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wishlistID(w, r)
	if !ok {
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.store.GetWishlist(r.Context(), id); errors.Is(err, database.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "wishlist not found")
		return
	} else if err != nil {
		h.logger.Error("failed to get wishlist", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get wishlist")
		return
	}

	items, err := h.extractor.ImportAmazonWishlist(r.Context(), req.URL)
	if errors.Is(err, scraper.ErrInvalidWishlistURL) {
		h.respondError(w, http.StatusBadRequest, "not a valid amazon wishlist url")
		return
	}
	if err != nil {
		h.logger.Warn("wishlist import failed", "url", req.URL, "error", err)
		h.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	inserted, err := h.store.InsertItems(r.Context(), id, items)
	if err != nil {
		h.logger.Error("failed to store imported items", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to store imported items")
		return
	}

	resp := ImportResponse{Imported: inserted, Items: items}
	if len(items) == 0 {
		resp.Hint = "no items found - make sure the wishlist is public and not empty"
	}

	h.respondJSON(w, http.StatusOK, resp)
}

type PurchaseRequest struct {
	Count int `json:"count"`
}

func (h *Handlers) PurchaseItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	req := PurchaseRequest{Count: 1}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.Count < 1 {
		h.respondError(w, http.StatusBadRequest, "count must be at least 1")
		return
	}

	item, err := h.store.MarkPurchased(r.Context(), itemID, req.Count)
	if errors.Is(err, database.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "item not found")
		return
	}
	if errors.Is(err, database.ErrPurchaseExceedsQuantity) {
		h.respondError(w, http.StatusConflict, "purchase would exceed requested quantity")
		return
	}
	if err != nil {
		h.logger.Error("failed to mark item purchased", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to mark item purchased")
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) wishlistID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "wishlistID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
