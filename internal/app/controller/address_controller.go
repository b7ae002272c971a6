package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	apperrors "github.com/shopzone-io/shopzone-backend/internal/errors"
	"github.com/shopzone-io/shopzone-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddAddressRequest struct {
	UserID     uint `json:"user_id"`
	NewAddress *struct {
		FullName     string `json:"full_name"`
		MobileNumber string `json:"mobile_number"`
		PinCode      string `json:"pin_code"`
		Address1     string `json:"address1"`
		Address2     string `json:"address2"`
		City         string `json:"city"`
		State        string `json:"state"`
		IsDefault    bool   `json:"is_default"`
	} `json:"new_address"`
}

type EditAddressRequest struct {
	UserID         uint                   `json:"user_id"`
	UpdatedAddress map[string]interface{} `json:"updated_address"`
}

// editableAddressFields are the columns a partial edit may touch
var editableAddressFields = map[string]bool{
	"full_name":     true,
	"mobile_number": true,
	"pin_code":      true,
	"address1":      true,
	"address2":      true,
	"city":          true,
	"state":         true,
	"is_default":    true,
}

// GetAddresses returns the user's address book
// GET /address/?user_id=
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := resolveUserID(c, 0)
	if !ok {
		log.Warn("Address list requested without user identity", nil)
		apperrors.BadRequest(c)
		return
	}

	addresses, err := ctrl.addressService.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to fetch addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// AddAddress persists a new address and returns the refreshed list
// POST /address/add/
func (ctrl *AddressController) AddAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add address request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok || req.NewAddress == nil {
		apperrors.BadRequest(c)
		return
	}

	address := &model.ShippingAddress{
		FullName:     req.NewAddress.FullName,
		MobileNumber: req.NewAddress.MobileNumber,
		PinCode:      req.NewAddress.PinCode,
		Address1:     req.NewAddress.Address1,
		Address2:     req.NewAddress.Address2,
		City:         req.NewAddress.City,
		State:        req.NewAddress.State,
		IsDefault:    req.NewAddress.IsDefault,
	}

	addresses, err := ctrl.addressService.AddAddress(c.Request.Context(), userID, address)
	if err != nil {
		log.Error("Failed to add address", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to add address")
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// EditAddress applies a partial update and returns the refreshed list
// PATCH /address/edit/
func (ctrl *AddressController) EditAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req EditAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid edit address request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c)
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		apperrors.BadRequest(c)
		return
	}

	var addressID uint
	if raw, exists := req.UpdatedAddress["id"]; exists {
		if id, ok := raw.(float64); ok && id > 0 {
			addressID = uint(id)
		}
	}

	fields := make(map[string]interface{}, len(req.UpdatedAddress))
	for key, value := range req.UpdatedAddress {
		if editableAddressFields[key] {
			fields[key] = value
		}
	}

	addresses, err := ctrl.addressService.EditAddress(c.Request.Context(), userID, addressID, fields)
	if err != nil {
		if errors.Is(err, service.ErrAddressIDRequired) {
			log.Warn("Address edit requested without id", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c)
			return
		}
		log.Error("Failed to edit address", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		apperrors.InternalError(c, "Failed to edit address")
		return
	}

	c.JSON(http.StatusOK, addresses)
}
