package services

// ServiceContainer bundles all services for wiring in app and tests.
type ServiceContainer struct {
	AuthService   AuthService
	UserService   UserService
	JobService    JobService
	ShareService  ShareService
	UploadService UploadService
}
