package delivery

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"meeting-notes-backend/internal/summary/dto"
	"meeting-notes-backend/internal/summary/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// MultipartOverhead is allowed on top of the file limit for boundaries and
// the other form fields.
const MultipartOverhead = 1 << 20

type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
	maxUploadBytes int64
}

func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase, maxUploadBytes int64) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the summary endpoints on an /api group.
func (h *SummaryHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/upload", h.Upload)
	api.POST("/summarize", h.Summarize)
	api.GET("/summaries", h.ListSummaries)
	api.GET("/summaries/:id", h.GetSummary)
	api.PUT("/summaries/:id", h.UpdateSummary)
	api.DELETE("/summaries/:id", h.DeleteSummary)
	api.POST("/share", h.ShareSummary)
}

// POST /api/upload
// Upload accepts a .txt transcript file or inline text and echoes it back.
func (h *SummaryHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+MultipartOverhead)

	var (
		text     string
		fromFile bool
	)
	if c.ContentType() == binding.MIMEJSON {
		var req dto.UploadRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.uploadBindError(c, err)
			return
		}
		text = req.Text
	} else {
		fh, err := c.FormFile("transcript")
		switch {
		case err == nil:
			content, status, msg := h.readTranscript(fh)
			if msg != "" {
				c.JSON(status, dto.ErrorResponse{Error: msg})
				return
			}
			text, fromFile = content, true
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			text = c.PostForm("text")
		default:
			h.uploadBindError(c, err)
			return
		}
	}

	if text == "" && !fromFile {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgNoInput})
		return
	}

	text, length, err := h.summaryUsecase.PrepareTranscript(text)
	if err != nil {
		respondError(c, err, "Failed to process transcript")
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{Success: true, Text: text, Length: length})
}

func (h *SummaryHandler) uploadBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: h.tooLargeMessage()})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgNoInput})
}

func (h *SummaryHandler) readTranscript(fh *multipart.FileHeader) (string, int, string) {
	if !isPlainText(fh) {
		return "", http.StatusBadRequest, msgOnlyTxt
	}
	if fh.Size > h.maxUploadBytes {
		return "", http.StatusBadRequest, h.tooLargeMessage()
	}

	f, err := fh.Open()
	if err != nil {
		return "", http.StatusInternalServerError, "Failed to process transcript"
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", http.StatusInternalServerError, "Failed to process transcript"
	}
	return decodeTranscript(content), 0, ""
}

// decodeTranscript replaces every invalid byte with U+FFFD, one per byte.
func decodeTranscript(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}

// bindJSON decodes a JSON body capped at the upload limit.
func (h *SummaryHandler) bindJSON(c *gin.Context, obj any) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	return c.ShouldBindJSON(obj)
}

// rejectBody answers a failed JSON bind; oversized bodies get their own message.
func (h *SummaryHandler) rejectBody(c *gin.Context, err error, msg string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf(msgBodyTooBig, h.maxUploadBytes>>20)})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func (h *SummaryHandler) tooLargeMessage() string {
	if h.maxUploadBytes == 10<<20 {
		return msgFileTooBig
	}
	return fmt.Sprintf("File size too large. Maximum %dMB allowed.", h.maxUploadBytes>>20)
}

func isPlainText(fh *multipart.FileHeader) bool {
	if strings.HasPrefix(fh.Header.Get("Content-Type"), "text/plain") {
		return true
	}
	return strings.EqualFold(filepath.Ext(fh.Filename), ".txt")
}

// POST /api/summarize
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := h.bindJSON(c, &req); err != nil {
		h.rejectBody(c, err, msgNeedText)
		return
	}

	summary, err := h.summaryUsecase.GenerateSummary(c.Request.Context(), req.Text, req.Prompt)
	if err != nil {
		respondError(c, err, "Failed to generate summary")
		return
	}

	c.JSON(http.StatusOK, dto.SummarizeResponse{
		Success: true,
		ID:      summary.ID,
		Summary: summary.Summary,
		Prompt:  summary.Prompt,
	})
}

// GET /api/summaries
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	summaries, err := h.summaryUsecase.ListRecentSummaries(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch summaries")
		return
	}

	c.JSON(http.StatusOK, dto.SummariesResponse{Summaries: summaries})
}

// GET /api/summaries/:id
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryUsecase.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch summary")
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: summary})
}

// PUT /api/summaries/:id
func (h *SummaryHandler) UpdateSummary(c *gin.Context) {
	var req dto.UpdateSummaryRequest
	if err := h.bindJSON(c, &req); err != nil {
		h.rejectBody(c, err, msgNeedSummary)
		return
	}

	summary, err := h.summaryUsecase.UpdateSummary(c.Request.Context(), c.Param("id"), req.Summary)
	if err != nil {
		respondError(c, err, "Failed to update summary")
		return
	}

	c.JSON(http.StatusOK, dto.UpdateSummaryResponse{Success: true, Summary: summary})
}

// DELETE /api/summaries/:id
func (h *SummaryHandler) DeleteSummary(c *gin.Context) {
	if err := h.summaryUsecase.DeleteSummary(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete summary")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Summary deleted successfully"})
}

// POST /api/share
// ShareSummary emails a stored summary to each recipient in turn.
func (h *SummaryHandler) ShareSummary(c *gin.Context) {
	var req dto.ShareRequest
	if err := h.bindJSON(c, &req); err != nil {
		h.rejectBody(c, err, msgNeedShare)
		return
	}

	results, err := h.summaryUsecase.ShareSummary(c.Request.Context(), usecase.ShareRequest{
		ID:         req.SummaryID,
		Recipients: req.Recipients,
		Subject:    req.Subject,
		Message:    req.Message,
	})
	if err != nil {
		respondError(c, err, "Failed to share summary via email")
		return
	}

	c.JSON(http.StatusOK, dto.ShareResponse{
		Success: true,
		Message: fmt.Sprintf("Summary shared with %d recipient(s)", len(results)),
		Count:   len(results),
		Results: results,
	})
}
