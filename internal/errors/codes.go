package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The admin UI maps these codes to its own messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound         = "CATEGORY_NOT_FOUND"
	CategoryAlreadyExists    = "CATEGORY_ALREADY_EXISTS"
	CategoryMainNotFound     = "CATEGORY_MAIN_NOT_FOUND"
	SubCategoryNotFound      = "SUB_CATEGORY_NOT_FOUND"
	SubCategoryAlreadyExists = "SUB_CATEGORY_ALREADY_EXISTS"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound       = "PRODUCT_NOT_FOUND"
	ProductMissingFields  = "PRODUCT_MISSING_FIELDS"
	ProductInvalidPayload = "PRODUCT_INVALID_PAYLOAD"

	// ==================== Content (BANNER_, HANDPICKED_) ====================
	BannerNotFound     = "BANNER_NOT_FOUND"
	HandpickedNotFound = "HANDPICKED_NOT_FOUND"
	HandpickedBadSlot  = "HANDPICKED_INVALID_SLOT"

	// ==================== Import (IMPORT_) ====================
	ImportEmpty         = "IMPORT_EMPTY"
	ImportInvalidFormat = "IMPORT_INVALID_FORMAT"
	ImportParseFailed   = "IMPORT_PARSE_FAILED"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"
	UploadSignFailed      = "UPLOAD_SIGN_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
