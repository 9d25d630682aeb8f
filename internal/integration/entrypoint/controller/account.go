package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itissulav/Kharcha/internal/application/usecase/account"
	"github.com/itissulav/Kharcha/internal/application/usecase/transaction"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	createUseCase *account.CreateAccountUseCase
	updateUseCase *account.UpdateAccountUseCase
	deleteUseCase *account.DeleteAccountUseCase
	getUseCase    *account.GetAccountsUseCase
	listUseCase   *transaction.ListTransactionsUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createUseCase *account.CreateAccountUseCase,
	updateUseCase *account.UpdateAccountUseCase,
	deleteUseCase *account.DeleteAccountUseCase,
	getUseCase *account.GetAccountsUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
) *AccountController {
	return &AccountController{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	openingBalance, err := dto.ToMoney("opening_balance", req.OpeningBalance)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		Name:           req.Name,
		OpeningBalance: openingBalance,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	accounts, err := c.getUseCase.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(accounts))
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "account ID")
	if !ok {
		return
	}

	acc, err := c.getUseCase.Get(ctx.Request.Context(), accountID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// TotalBalance handles GET /accounts/total-balance requests.
func (c *AccountController) TotalBalance(ctx *gin.Context) {
	total, err := c.getUseCase.TotalBalance(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TotalBalanceResponse{TotalBalance: total.Decimal()})
}

// Update handles PATCH /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "account ID")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	balance, err := dto.ToMoneyPtr("balance", req.Balance)
	if err != nil {
		respondError(ctx, err)
		return
	}

	acc, err := c.updateUseCase.Execute(ctx.Request.Context(), account.UpdateAccountInput{
		AccountID: accountID,
		Name:      req.Name,
		Balance:   balance,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// Delete handles DELETE /accounts/:id requests.
func (c *AccountController) Delete(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "account ID")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), accountID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Transactions handles GET /accounts/:id/transactions requests.
func (c *AccountController) Transactions(ctx *gin.Context) {
	accountID, ok := pathID(ctx, "account ID")
	if !ok {
		return
	}

	if _, err := c.getUseCase.Get(ctx.Request.Context(), accountID); err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		AccountID:   &accountID,
		GroupByDate: ctx.Query("group") == "date",
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.Groups))
}
