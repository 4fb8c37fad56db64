package restapi

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contract_cli/internal/domain/entity"
)

// ContractHandler serves the contract, wallet and health endpoints of a devnet.
type ContractHandler struct {
	store     *Store
	network   string
	chainType entity.ChainType
	logger    *zap.Logger
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(store *Store, network string, chainType entity.ChainType, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{
		store:     store,
		network:   network,
		chainType: chainType,
		logger:    logger,
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, entity.RemoteError{Message: message})
}

// validationMessage strips the operation prefix so the client does not repeat it.
func validationMessage(err error) string {
	var ce *entity.ChainError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}

// DeployHandler handles POST /api/contracts/deploy.
func (h *ContractHandler) DeployHandler(c *gin.Context) {
	var req entity.DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		abort(c, http.StatusBadRequest, validationMessage(err))
		return
	}
	chainType := req.ChainType
	if chainType == "" {
		chainType = h.chainType
	}

	record := h.store.Deploy(req.Code, chainType)
	h.logger.Info("Contract deployed", zap.String("address", record.Address), zap.Int("args", len(req.ConstructorArgs)))
	c.JSON(http.StatusOK, entity.DeployResponse{Address: record.Address})
}

// GetContractHandler handles GET /api/contracts/:address.
func (h *ContractHandler) GetContractHandler(c *gin.Context) {
	record, ok := h.store.Contract(c.Param("address"))
	if !ok {
		abort(c, http.StatusNotFound, "contract not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

// CallHandler handles POST /api/contracts/:address/call.
func (h *ContractHandler) CallHandler(c *gin.Context) {
	var req entity.CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		abort(c, http.StatusBadRequest, validationMessage(err))
		return
	}
	result, ok := h.store.Call(c.Param("address"), req)
	if !ok {
		abort(c, http.StatusNotFound, "contract not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

// BalanceHandler handles GET /api/wallet/balance/:address.
func (h *ContractHandler) BalanceHandler(c *gin.Context) {
	address := c.Param("address")
	balance, ok := h.store.Balance(address)
	if !ok {
		abort(c, http.StatusBadRequest, "invalid address")
		return
	}
	c.JSON(http.StatusOK, entity.BalanceResponse{
		Address: address,
		Balance: (*math.HexOrDecimal256)(balance),
	})
}

// HealthHandler handles GET /health.
func (h *ContractHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, entity.NetworkStatus{
		Status:      "ok",
		Network:     h.network,
		ChainType:   h.chainType,
		BlockHeight: h.store.Height(),
	})
}
