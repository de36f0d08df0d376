package handlers

// AppHandlers bundles all HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	JobHandler    *JobHandler
	ShareHandler  *ShareHandler
	UploadHandler *UploadHandler
	FileHandler   *FileHandler
}
