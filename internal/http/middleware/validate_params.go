package middleware

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-thumb/internal/models"
)

const (
	MsgMissingParams  = "Missing required parameters. Please provide filename, width, and height."
	MsgFilenameEmpty  = "Filename must be a non-empty string"
	MsgWidthPositive  = "Width must be a positive number"
	MsgHeightPositive = "Height must be a positive number"
	ResizeRequestKey  = "resize_request"
)

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// ValidateResizeParams checks the filename, width and height query parameters
// and stores the parsed models.ProcessingRequest under ResizeRequestKey.
func ValidateResizeParams() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		filename := ctx.Query("filename")
		width := ctx.Query("width")
		height := ctx.Query("height")

		if filename == "" || width == "" || height == "" {
			abortBadRequest(ctx, MsgMissingParams)
			return
		}

		filename = strings.TrimSpace(filename)
		if filename == "" {
			abortBadRequest(ctx, MsgFilenameEmpty)
			return
		}

		w, ok := parseLeadingInt(width)
		if !ok || w <= 0 {
			abortBadRequest(ctx, MsgWidthPositive)
			return
		}

		h, ok := parseLeadingInt(height)
		if !ok || h <= 0 {
			abortBadRequest(ctx, MsgHeightPositive)
			return
		}

		ctx.Set(ResizeRequestKey, models.ProcessingRequest{
			Filename: filename,
			Width:    w,
			Height:   h,
		})
		ctx.Next()
	}
}

// parseLeadingInt reads the integer prefix of s, so "120px" is 120.
func parseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func abortBadRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Error:   message,
	})
}
