package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FormState resultado de un formulario rechazado: errores por campo y un mensaje resumen.
// Es el único contrato que la capa de UI necesita para pintar errores.
type FormState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// RedirectResponse respuesta JSON cuando la mutación termina en navegación.
type RedirectResponse struct {
	ID       string `json:"id,omitempty"`
	Redirect string `json:"redirect"`
}
