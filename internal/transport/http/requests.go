package http

// provisionRequest is the POST /subdomains body.
type provisionRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,notblank,max=253"`
}
