package errors

import "fmt"

// Common constructors for the error kinds the generator and patcher report

// NewAlreadyExists reports that an artifact's target file is already present
func NewAlreadyExists(kind, path string) *BaseError {
	return Newf(AlreadyExistsErrorCode, "%s already exists", kind).
		WithLocation(SourceLocation{File: path}).
		WithContext("kind", kind).
		WithSuggestion("Choose a different name or remove the existing file")
}

// WrapFileSystemError wraps file system related errors as IOFailure
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(IOFailureErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// NewRegionNotFound reports a provider document missing the registration function
func NewRegionNotFound(function string) *BaseError {
	return Newf(RegionNotFoundErrorCode, "could not find %s method", function).
		WithContext("function", function).
		WithSuggestion(fmt.Sprintf("Declare 'public function %s()' with a body in the provider", function))
}

// NewMalformedDocument reports a provider document whose structure cannot be patched
func NewMalformedDocument(reason string, line, column int) *BaseError {
	return Newf(MalformedDocumentErrorCode, "malformed provider document: %s", reason).
		WithLocation(SourceLocation{Line: line, Column: column})
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}
