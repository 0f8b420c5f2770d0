package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type businessMapping struct {
	status  int
	message string
}

var businessMessages = map[string]businessMapping{
	CodeInvalidRequest:      {http.StatusBadRequest, "Dados inválidos."},
	CodeInvalidDateOrTime:   {http.StatusBadRequest, "Data ou hora inválida."},
	CodeInvalidInterval:     {http.StatusBadRequest, "O horário final deve ser posterior ao inicial."},
	CodeTimeConflict:        {http.StatusConflict, "Já existe um agendamento nesse horário."},
	CodeTooSoon:             {http.StatusBadRequest, "Horário inválido."},
	CodeOutsideWorkingHour:  {http.StatusBadRequest, "Fora do horário de atendimento."},
	CodeServiceNotFound:     {http.StatusBadRequest, "Serviço não encontrado."},
	CodeServiceUnavailable:  {http.StatusBadRequest, "Serviço indisponível neste dia."},
	CodeCalendarNotFound:    {http.StatusNotFound, "Agenda não encontrada."},
	CodeSalonNotFound:       {http.StatusNotFound, "Salão não encontrado."},
	CodeClientNotFound:      {http.StatusNotFound, "Cliente não encontrado."},
	CodeAppointmentNotFound: {http.StatusNotFound, "Agendamento não encontrado."},
	CodeAttachmentNotFound:  {http.StatusNotFound, "Anexo não encontrado."},
	CodeInvalidState:        {http.StatusBadRequest, "Agendamento não pode ser alterado."},
	CodeUnsupportedFile:     {http.StatusBadRequest, "Arquivo não suportado."},
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Business escreve a resposta de um erro de regra de negócio. Erros que não
// são de negócio viram 500 com o código de fallback informado.
func Business(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if IsExclusionConflict(err) {
		err = ErrBusiness(CodeTimeConflict)
	}

	code, ok := AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		Internal(c, fallbackCode, fallbackMessage)
		return
	}

	m, known := businessMessages[code]
	if !known {
		BadRequest(c, code, code)
		return
	}
	Write(c, m.status, code, m.message)
}
