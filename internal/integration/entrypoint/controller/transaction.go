package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itissulav/Kharcha/internal/application/usecase/limit"
	"github.com/itissulav/Kharcha/internal/application/usecase/transaction"
	"github.com/itissulav/Kharcha/internal/domain/entity"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	postUseCase   *transaction.PostTransactionUseCase
	editUseCase   *transaction.EditTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	limitUseCase  *limit.EvaluateLimitUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	postUseCase *transaction.PostTransactionUseCase,
	editUseCase *transaction.EditTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	limitUseCase *limit.EvaluateLimitUseCase,
) *TransactionController {
	return &TransactionController{
		postUseCase:   postUseCase,
		editUseCase:   editUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
		limitUseCase:  limitUseCase,
	}
}

// Create handles POST /transactions requests.
// The limit decision is computed before posting and returned alongside the
// new transaction. It never blocks the post.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input, err := toPostInput(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	decision, err := c.limitUseCase.Execute(ctx.Request.Context(), limit.EvaluateLimitInput{
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Type:       input.Type,
	})
	if err != nil {
		if domainerror.IsStorage(err) {
			respondError(ctx, err)
			return
		}
		// The post reports the same validation or reference problem.
		slog.DebugContext(ctx.Request.Context(), "Limit evaluation skipped", "error", err)
		decision = nil
	}

	output, err := c.postUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.PostTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Balance:     output.Balance.Decimal(),
		Limit:       dto.ToLimitDecisionResponse(decision),
	})
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := pathID(ctx, "transaction ID")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	input, err := toEditInput(transactionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEditTransactionResponse(output))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, ok := pathID(ctx, "transaction ID")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		AccountID: output.AccountID.String(),
		Balance:   output.Balance.Decimal(),
	})
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	limitValue, ok := queryInt(ctx, "limit", 0)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		CategoryName: ctx.Query("category"),
		Range:        transaction.DateRangeFilter(ctx.Query("range")),
		Limit:        limitValue,
		GroupByDate:  ctx.Query("group") == "date",
	}

	if txType := ctx.Query("type"); txType != "" {
		t := entity.TransactionType(txType)
		input.Type = &t
	}

	if accountID := ctx.Query("account_id"); accountID != "" {
		id, err := dto.ParseID("account_id", accountID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		input.AccountID = &id
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.Groups))
}

// Recent handles GET /transactions/recent requests.
func (c *TransactionController) Recent(ctx *gin.Context) {
	limitValue, ok := queryInt(ctx, "limit", transaction.DefaultRecentLimit)
	if !ok {
		return
	}

	items, err := c.listUseCase.Recent(ctx.Request.Context(), limitValue)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(items, nil))
}

// CreditsThisMonth handles GET /transactions/credits/this-month requests.
func (c *TransactionController) CreditsThisMonth(ctx *gin.Context) {
	items, err := c.listUseCase.CreditsThisMonth(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(items, nil))
}

func toPostInput(req dto.CreateTransactionRequest) (transaction.PostTransactionInput, error) {
	accountID, err := bodyID("account_id", req.AccountID)
	if err != nil {
		return transaction.PostTransactionInput{}, err
	}
	categoryID, err := bodyID("category_id", req.CategoryID)
	if err != nil {
		return transaction.PostTransactionInput{}, err
	}
	amount, err := dto.ToMoney("amount", req.Amount)
	if err != nil {
		return transaction.PostTransactionInput{}, err
	}

	var createdAt time.Time
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	return transaction.PostTransactionInput{
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       entity.TransactionType(req.Type),
		Amount:     amount,
		Note:       req.Note,
		CreatedAt:  createdAt,
		Recurrence: req.Recurrence(),
	}, nil
}

func toEditInput(id uuid.UUID, req dto.UpdateTransactionRequest) (transaction.EditTransactionInput, error) {
	accountID, err := dto.ParseOptionalID("account_id", req.AccountID)
	if err != nil {
		return transaction.EditTransactionInput{}, err
	}
	categoryID, err := dto.ParseOptionalID("category_id", req.CategoryID)
	if err != nil {
		return transaction.EditTransactionInput{}, err
	}
	amount, err := dto.ToMoneyPtr("amount", req.Amount)
	if err != nil {
		return transaction.EditTransactionInput{}, err
	}

	input := transaction.EditTransactionInput{
		ID:          id,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Note:        req.Note,
		CreatedAt:   req.CreatedAt,
		IsRecurring: req.IsRecurring,
		Recurrence:  req.Recurrence(),
	}
	if req.Type != nil {
		txType := entity.TransactionType(*req.Type)
		input.Type = &txType
	}
	return input, nil
}
