package api

import (
	"dashboard-tokens/internal/api/validations"
	"dashboard-tokens/internal/models/dto"
	"dashboard-tokens/internal/services"
	"dashboard-tokens/internal/session"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/matheodrd/httphelper/handler"
	"net/http"
)

const (
	createdMessage = "Personal Token Access Generated."
	revokedMessage = "Personal Access Token revoked."
	deletedMessage = "Personal Access Token deleted."
)

type TokensResponse struct {
	Tokens []*dto.AccessTokenDTO `json:"tokens"`
}

type CreateErrorBody struct {
	Body string `json:"body"`
}

type CreateErrorResponse struct {
	Errors CreateErrorBody `json:"errors"`
}

type WhoAmIResponse struct {
	UserID string `json:"userId"`
}

func (s *Server) ListTokens() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		userID, ok := currentUser(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return nil
		}

		tokens, err := s.service.ListTokens(r.Context(), userID)
		if err != nil {
			return err
		}

		if wantsJSON(r) {
			response := TokensResponse{Tokens: dto.AccessTokensToDTO(tokens)}
			return handler.Encode[TokensResponse](response, http.StatusOK, w)
		}

		flash := s.sessions.PopFlash(w, r)
		if flash == nil || flash.UserID != userID {
			return renderTokens(w, tokens, "", "")
		}

		revealID := ""
		if flash.TokenID != "" {
			revealed, err := s.service.RevealToken(r.Context(), userID, flash.TokenID)
			if err != nil {
				return err
			}
			if revealed != nil {
				revealID = revealed.ID
			}
		}
		return renderTokens(w, tokens, flash.Message, revealID)
	})
}

func (s *Server) CreateToken() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		userID, ok := currentUser(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return nil
		}

		token, err := s.service.CreateToken(r.Context(), userID)
		if err != nil {
			s.log.Error("cannot create personal access token", "user_id", userID, "err", err)
			response := CreateErrorResponse{Errors: CreateErrorBody{Body: err.Error()}}
			return handler.Encode[CreateErrorResponse](response, http.StatusBadRequest, w)
		}

		if wantsJSON(r) {
			return handler.Encode(dto.CreatedAccessTokenToDTO(token), http.StatusCreated, w)
		}

		return s.redirectWithFlash(w, r, session.Flash{Message: createdMessage, TokenID: token.ID})
	})
}

func (s *Server) RevokeToken() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		userID, ok := currentUser(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return nil
		}

		id := validations.TokenIDValidator{ID: r.PathValue("id")}
		if err := id.Validate(); err != nil {
			if validationErrors := decodeValidationError(err); validationErrors != nil {
				return buildValidationErrors(w, validationErrors)
			}
			return err
		}

		token, err := s.service.RevokeToken(r.Context(), userID, id.ID)
		if err != nil {
			return encodeServiceError(w, err)
		}

		if wantsJSON(r) {
			return handler.Encode(dto.AccessTokenToDTO(token), http.StatusOK, w)
		}

		return s.redirectWithFlash(w, r, session.Flash{Message: revokedMessage})
	})
}

func (s *Server) DeleteToken() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		userID, ok := currentUser(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return nil
		}

		id := validations.TokenIDValidator{ID: r.PathValue("id")}
		if err := id.Validate(); err != nil {
			if validationErrors := decodeValidationError(err); validationErrors != nil {
				return buildValidationErrors(w, validationErrors)
			}
			return err
		}

		if err := s.service.DeleteToken(r.Context(), userID, id.ID); err != nil {
			return encodeServiceError(w, err)
		}

		if wantsJSON(r) {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		return s.redirectWithFlash(w, r, session.Flash{Message: deletedMessage})
	})
}

func (s *Server) WhoAmI() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		userID, ok := currentUser(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return nil
		}

		return handler.Encode[WhoAmIResponse](WhoAmIResponse{UserID: userID}, http.StatusOK, w)
	})
}

func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, flash session.Flash) error {
	flash.UserID, _ = currentUser(r)
	if err := s.sessions.SetFlash(w, flash); err != nil {
		return err
	}
	http.Redirect(w, r, tokensPath, http.StatusSeeOther)
	return nil
}

// encodeServiceError answers coded service errors itself and hands anything
// else back to the handler wrapper.
func encodeServiceError(w http.ResponseWriter, err error) error {
	if ewc := services.DecodeErrorWithCode(err); ewc != nil {
		return handler.Encode(ewc, ewc.Code, w)
	}
	return err
}

func decodeValidationError(err error) validator.ValidationErrors {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func buildValidationErrors(w http.ResponseWriter, errors validator.ValidationErrors) error {
	errs := make(map[string]string)

	for _, fieldErr := range errors {
		errs[fieldErr.Field()] = fmt.Sprintf("failed on '%s'", fieldErr.Tag())
	}

	validationErrorResponse := validations.ValidationError{Message: "Validation Error", Details: errs}
	err := handler.Encode[validations.ValidationError](validationErrorResponse, http.StatusBadRequest, w)
	if err != nil {
		return err
	}

	return nil
}
