package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"personallibrary/internal/httpx"
)

// Plain text bodies. Clients match on the exact text, the status is always 200.
const (
	msgNoBook           = "no book exists"
	msgDeleteSuccessful = "delete successful"
	msgCompleteDelete   = "complete delete successful"
)

const maxMultipartMemory = 1 << 20

type HTTPHandler struct {
	service *Service
	log     *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{service: service, log: logger}
}

// Register binds the book routes onto mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/books", h.List)
	mux.HandleFunc("POST /api/books", h.Create)
	mux.HandleFunc("DELETE /api/books", h.DeleteAll)
	mux.HandleFunc("GET /api/books/{$}", h.List)
	mux.HandleFunc("POST /api/books/{$}", h.Create)
	mux.HandleFunc("DELETE /api/books/{$}", h.DeleteAll)
	mux.HandleFunc("GET /api/books/{id}", h.Get)
	mux.HandleFunc("POST /api/books/{id}", h.AddComment)
	mux.HandleFunc("DELETE /api/books/{id}", h.Delete)
}

// List handles GET /api/books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Summary
// @Router /api/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Create handles POST /api/books
// @Summary Create a book
// @Tags books
// @Accept json,x-www-form-urlencoded
// @Produce json,plain
// @Param title formData string true "Book title"
// @Success 200 {object} Created
// @Router /api/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := h.readFields(r)
	if err != nil {
		h.bodyTooLarge(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), CreateInput{Title: fields["title"]})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.log.InfoContext(r.Context(), "book created", "id", created.ID, "request_id", httpx.RequestIDFrom(r))
	httpx.JSON(w, http.StatusOK, created)
}

// Get handles GET /api/books/{id}
// @Summary Get a book with its comments
// @Tags books
// @Produce json,plain
// @Param id path string true "Book id"
// @Success 200 {object} Book
// @Router /api/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// AddComment handles POST /api/books/{id}
// @Summary Add a comment to a book
// @Tags books
// @Accept json,x-www-form-urlencoded
// @Produce json,plain
// @Param id path string true "Book id"
// @Param comment formData string true "Comment text"
// @Success 200 {object} Book
// @Router /api/books/{id} [post]
func (h *HTTPHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	fields, err := h.readFields(r)
	if err != nil {
		h.bodyTooLarge(w, r, err)
		return
	}

	b, err := h.service.AddComment(r.Context(), r.PathValue("id"), CommentInput{Comment: fields["comment"]})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Delete handles DELETE /api/books/{id}
// @Summary Delete a book
// @Tags books
// @Produce plain
// @Param id path string true "Book id"
// @Router /api/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.log.InfoContext(r.Context(), "book deleted", "id", id, "request_id", httpx.RequestIDFrom(r))
	httpx.Text(w, http.StatusOK, msgDeleteSuccessful)
}

// DeleteAll handles DELETE /api/books
// @Summary Delete every book
// @Tags books
// @Produce plain
// @Router /api/books [delete]
func (h *HTTPHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAll(r.Context()); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.InfoContext(r.Context(), "catalog cleared", "request_id", httpx.RequestIDFrom(r))
	httpx.Text(w, http.StatusOK, msgCompleteDelete)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *MissingFieldError
	switch {
	case errors.As(err, &missing):
		httpx.Text(w, http.StatusOK, missing.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Text(w, http.StatusOK, msgNoBook)
	default:
		h.internalError(w, r, err)
	}
}

func (h *HTTPHandler) bodyTooLarge(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WarnContext(r.Context(), "request body too large", "err", err, "request_id", httpx.RequestIDFrom(r))
	httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "book request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
		"request_id", httpx.RequestIDFrom(r),
	)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

// readFields collects the fields of a JSON, urlencoded or multipart body.
// Fields that cannot be read are simply absent. The only error returned is
// *http.MaxBytesError, for bodies over the configured size limit.
func (h *HTTPHandler) readFields(r *http.Request) (map[string]string, error) {
	fields := map[string]string{}
	if r.Body == nil {
		return fields, nil
	}

	var err error
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err = r.ParseForm(); err != nil {
			break
		}
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
	case "multipart/form-data":
		if err = r.ParseMultipartForm(maxMultipartMemory); err != nil {
			break
		}
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				fields[k] = vs[0]
			}
		}
	default:
		var raw map[string]any
		if err = json.NewDecoder(r.Body).Decode(&raw); err != nil {
			break
		}
		for k, v := range raw {
			if text, ok := fieldText(v); ok {
				fields[k] = text
			}
		}
	}

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, tooLarge
		}
		h.log.DebugContext(r.Context(), "unreadable request body", "content_type", mediaType, "err", err)
	}
	return fields, nil
}

// fieldText turns a decoded JSON value into field text. null, false, 0 and ""
// count as not provided; other scalars are formatted and arrays or objects
// keep their JSON text.
func fieldText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case bool:
		return "true", t
	case float64:
		return fmt.Sprint(t), t != 0
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
