// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// statusForKind maps an error kind to its HTTP status code.
func statusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindReference:
		return http.StatusUnprocessableEntity
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Storage failures are logged and
// their details hidden from the client.
func respondError(ctx *gin.Context, err error) {
	kind := domainerror.KindOf(err)
	status := statusForKind(kind)
	code := domainerror.CodeOf(err)

	if kind == domainerror.KindStorage {
		slog.ErrorContext(ctx.Request.Context(), "Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"code", code,
			"error", err,
		)
		ctx.JSON(status, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  code,
		})
		return
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: messageOf(err),
		Code:  code,
	})
}

// messageOf returns the message of the first coded error without the wrapped cause.
func messageOf(err error) string {
	var coded domainerror.Coded
	if !errors.As(err, &coded) {
		return err.Error()
	}
	switch e := coded.(type) {
	case *domainerror.TransactionError:
		return e.Message
	case *domainerror.AccountError:
		return e.Message
	case *domainerror.CategoryError:
		return e.Message
	case *domainerror.DashboardError:
		return e.Message
	case *domainerror.RecurrenceError:
		return e.Message
	case *domainerror.SettingsError:
		return e.Message
	case *domainerror.RequestError:
		return e.Message
	default:
		return coded.Error()
	}
}

// bindJSON decodes the request body, responding with REQ-010001 on failure.
func bindJSON(ctx *gin.Context, target any) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidRequestBody),
		})
		return false
	}
	return true
}

// pathID parses the :id path parameter, responding with REQ-010002 on failure.
func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := dto.ParseID(name, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(ctx *gin.Context, key string, defaultValue int) (int, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		respondError(ctx, domainerror.NewRequestError(
			domainerror.ErrCodeInvalidQuery,
			key+" must be an integer",
			err,
		))
		return 0, false
	}
	return value, true
}

// bodyID parses an identifier from a request body. Empty values map to uuid.Nil
// so the use case reports the missing field.
func bodyID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	return dto.ParseID(field, value)
}
