package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/coursedesk/coursedesk-panel/internal/backend"
	"github.com/coursedesk/coursedesk-panel/internal/config"
	"github.com/coursedesk/coursedesk-panel/internal/logger"
	"github.com/coursedesk/coursedesk-panel/internal/model"
	"github.com/coursedesk/coursedesk-panel/internal/validation"
)

// panelctl seeds an admin account straight into the REST backend so a
// fresh deployment has someone who can log into the panel.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	api := backend.New(cfg.BackendURL, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input

	fmt.Print("Enter Phone: ")
	phone, _ := reader.ReadString('\n')
	phone = strings.TrimSpace(phone)

	fmt.Print("Enter Enrollment Number: ")
	enrollNumber, _ := reader.ReadString('\n')
	enrollNumber = strings.TrimSpace(enrollNumber)

	// ─── Validate ───────────────────────────────────────────────────────
	if problems := validation.ValidateUser(name, email, password, phone, enrollNumber, string(model.RoleAdmin)); len(problems) > 0 {
		for _, p := range problems {
			fmt.Println("Error:", p)
		}
		return
	}

	// ─── Duplicate Check ────────────────────────────────────────────────
	existing, err := api.Users.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to reach backend")
	}
	for _, u := range existing {
		if strings.EqualFold(u.Email, email) {
			fmt.Println("Error: User with this email already exists")
			return
		}
	}

	// ─── Create Admin ───────────────────────────────────────────────────
	user := model.User{
		Name:            validation.SanitizeInput(name),
		Email:           email,
		Password:        password,
		Phone:           phone,
		EnrollNumber:    enrollNumber,
		Role:            model.RoleAdmin,
		DateOfAdmission: model.FormatAdmissionDate(time.Now()),
	}

	created, err := api.Users.Create(ctx, user)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %d\n", created.Name, created.Email, created.ID)
}
