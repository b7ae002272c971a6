package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The storefront maps these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login required
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Catalog (CATALOG_) ====================
	ProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"
	CategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartEmptyMerge    = "CART_EMPTY_MERGE"    // merge payload had no processable items
	CartInvalidUpdate = "CART_INVALID_UPDATE" // update body matched no recognized shape

	// ==================== Order (ORDER_) ====================
	OrderEmpty        = "ORDER_EMPTY"          // missing header or item list
	OrderNoValidItems = "ORDER_NO_VALID_ITEMS" // every line item referenced an unknown product

	// ==================== Address (ADDRESS_) ====================
	AddressIDRequired = "ADDRESS_ID_REQUIRED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
