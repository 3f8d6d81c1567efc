package http

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dashboard-facturas/internal/application/billing"
)

var invoiceFormKeys = []string{billing.FieldCustomerID, "customer_id", billing.FieldAmount, billing.FieldStatus}

// formInput lee el cuerpo como bolsa sin tipar: JSON (números como json.Number) o form-data.
// La coerción y validación quedan para el esquema.
func formInput(c *fiber.Ctx) (billing.RawInput, error) {
	raw := billing.RawInput{}
	if isJSON(c) {
		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return raw, nil
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	for _, k := range invoiceFormKeys {
		if v := c.FormValue(k); v != "" {
			raw[k] = v
		}
	}
	return raw, nil
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEApplicationJSON)
}

// isFormPost indica si la petición viene de un formulario HTML (responde con 303).
func isFormPost(c *fiber.Ctx) bool {
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}
