package handlers

import (
	"net/http"
)

type signUpRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	DisplayName  string `json:"displayName" validate:"required"`
	AgreeToTerms bool   `json:"agreeToTerms"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleSignInRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (a *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !a.decode(w, r, &req) {
		return
	}
	user, err := a.Sync.SignUp(r.Context(), req.Email, req.Password, req.DisplayName, req.AgreeToTerms)
	if err != nil {
		a.authError(w, err)
		return
	}
	a.json(w, http.StatusCreated, user)
}

func (a *App) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !a.decode(w, r, &req) {
		return
	}
	user, err := a.Sync.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		a.authError(w, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

func (a *App) SignInWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if !a.decode(w, r, &req) {
		return
	}
	user, err := a.Sync.SignInWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		a.authError(w, err)
		return
	}
	a.json(w, http.StatusOK, user)
}

func (a *App) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := a.Sync.SignOut(r.Context()); err != nil {
		a.authError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.Sync.ResetPassword(r.Context(), req.Email); err != nil {
		a.authError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "sent"})
}
