package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"viaticos/internal/data"
	"viaticos/internal/form"
	"viaticos/internal/service"
)

func (h *Handler) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"simulado": h.svc.Simulated(),
		"enviando": gin.H{
			service.FormComision: h.svc.Submitting(service.FormComision),
			service.FormUsuario:  h.svc.Submitting(service.FormUsuario),
		},
	})
}

func (h *Handler) handleUsers(c *gin.Context) {
	dir, err := h.svc.LoadUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusFor(err), gin.H{
			"error":    err.Error(),
			"aviso":    service.LoadFailedNotice(),
			"usuarios": dir.Users(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuarios": dir.Users()})
}

func (h *Handler) handleCreateCommission(c *gin.Context) {
	var req data.Commission
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	fields, res, notice, err := h.svc.SubmitCommission(c.Request.Context(), req)
	respondSubmit(c, fields, res, notice, err)
}

func (h *Handler) handleCreateUser(c *gin.Context) {
	var req data.User
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	fields, res, notice, err := h.svc.SubmitUser(c.Request.Context(), req)
	respondSubmit(c, fields, res, notice, err)
}

func respondSubmit(c *gin.Context, fields []*form.Field, res any, notice service.Notice, err error) {
	body := gin.H{"aviso": notice, "campos": fields}
	if err != nil {
		_ = c.Error(err)
		body["error"] = err.Error()
		c.JSON(statusFor(err), body)
		return
	}
	body["resultado"] = res
	c.JSON(http.StatusOK, body)
}

type validateReq struct {
	Rule     form.Rule `json:"regla" binding:"required,oneof=texto cedula nombre monto enlace fecha seleccion"`
	Value    string    `json:"valor"`
	Required bool      `json:"requerido"`
}

func (h *Handler) handleValidate(c *gin.Context) {
	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	f := &form.Field{Rule: req.Rule, Value: req.Value, Required: req.Required}
	ok := form.ValidateField(f)
	c.JSON(http.StatusOK, gin.H{"valido": ok, "estado": f.State})
}

type validateFormReq struct {
	Form       string          `json:"formulario" binding:"required,oneof=comision usuario"`
	Commission data.Commission `json:"comision"`
	User       data.User       `json:"usuario"`
}

func (h *Handler) handleValidateForm(c *gin.Context) {
	var req validateFormReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	fields := form.UserFields(req.User)
	if req.Form == service.FormComision {
		fields = form.CommissionFields(req.Commission)
	}
	ok := form.ValidateForm(fields)
	c.JSON(http.StatusOK, gin.H{"valido": ok, "campos": fields})
}

type currencyReq struct {
	Value string `json:"valor"`
	Caret *int   `json:"cursor"`
}

func (h *Handler) handleCurrency(c *gin.Context) {
	var req currencyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caret := len([]rune(req.Value))
	if req.Caret != nil {
		caret = *req.Caret
	}
	value, caret := form.Reformat(req.Value, caret)
	c.JSON(http.StatusOK, gin.H{
		"valor":    value,
		"cursor":   caret,
		"numerico": form.ExtractNumeric(value),
	})
}

type textReq struct {
	Text string `json:"texto"`
}

func (h *Handler) handlePaste(c *gin.Context) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valor": form.Paste(req.Text)})
}

func (h *Handler) handleName(c *gin.Context) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valor": form.StripDigits(req.Text)})
}

func (h *Handler) handleDate(c *gin.Context) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valor": form.FormatDate(req.Text)})
}

type keyReq struct {
	Key string `json:"tecla" binding:"required"`
}

func (h *Handler) handleKey(c *gin.Context) {
	var req keyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permitida": form.AllowKey(req.Key)})
}

// linkReq carries the two linked inputs of the commission form.
type linkReq struct {
	Nombre string `json:"nombre"`
	Cedula string `json:"cedula"`
}

func (r linkReq) fields() (nombre, cedula *form.Field) {
	return &form.Field{Name: "nombre", Rule: form.RuleChoice, Required: true, Value: r.Nombre},
		&form.Field{Name: "cedula", Rule: form.RuleIdentifier, Required: true, Value: r.Cedula}
}

func (h *Handler) link(c *gin.Context, apply func(d *form.Directory, nombre, cedula *form.Field)) {
	var req linkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	nombre, cedula := req.fields()
	apply(h.svc.Users(), nombre, cedula)
	c.JSON(http.StatusOK, gin.H{"nombre": nombre, "cedula": cedula})
}

func (h *Handler) handleSelectName(c *gin.Context) {
	h.link(c, func(d *form.Directory, nombre, cedula *form.Field) { d.SelectName(nombre, cedula) })
}

func (h *Handler) handleTypeIdentifier(c *gin.Context) {
	h.link(c, func(d *form.Directory, nombre, cedula *form.Field) { d.TypeIdentifier(cedula, nombre) })
}

func (h *Handler) handleLeaveIdentifier(c *gin.Context) {
	h.link(c, func(d *form.Directory, nombre, cedula *form.Field) { d.LeaveIdentifier(cedula, nombre) })
}
