package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"auth-api/internal/config"
	"auth-api/internal/db"
	"auth-api/internal/email"
	"auth-api/internal/repository"
	"auth-api/internal/service"
)

// consoleSender imprime los correos en la terminal para poder leer los OTP sin SMTP.
type consoleSender struct {
	out io.Writer
}

func (s consoleSender) Send(_ context.Context, msg email.Message) error {
	fmt.Fprintf(s.out, "\n----- correo para %s -----\nAsunto: %s\n%s\n--------------------------\n", msg.To, msg.Subject, msg.Text)
	return nil
}

type console struct {
	reader *bufio.Reader
	out    io.Writer
	auth   *service.AuthService
	users  *service.UserService
	userID string
	token  string
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := service.NewAuthService(logger, userRepo, nil, jwtSvc, consoleSender{out: os.Stdout},
		service.NewOTPRateLimiter(cfg.OTPRateWindow, cfg.OTPRateMax))

	c := &console{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		auth:   authSvc,
		users:  service.NewUserService(userRepo),
	}
	c.run(ctx)
}

func (c *console) run(ctx context.Context) {
	for {
		fmt.Fprintln(c.out, "\n===== Auth Console =====")
		if c.userID != "" {
			fmt.Fprintf(c.out, "Sesion activa: %s\n", c.userID)
		}
		fmt.Fprintln(c.out, "[1] Registrar")
		fmt.Fprintln(c.out, "[2] Login")
		fmt.Fprintln(c.out, "[3] Enviar OTP de verificacion")
		fmt.Fprintln(c.out, "[4] Verificar cuenta")
		fmt.Fprintln(c.out, "[5] Enviar OTP de reset")
		fmt.Fprintln(c.out, "[6] Resetear password")
		fmt.Fprintln(c.out, "[7] Ver perfil")
		fmt.Fprintln(c.out, "[8] Logout")
		fmt.Fprintln(c.out, "[9] Salir")

		choice, err := c.prompt("Selecciona una opcion: ")
		if err != nil {
			return
		}
		if choice == "9" {
			return
		}
		if err := c.dispatch(ctx, choice); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *console) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		username, _ := c.prompt("Nombre: ")
		emailAddr, _ := c.prompt("Email: ")
		password, _ := c.prompt("Password: ")
		res, err := c.auth.Register(ctx, service.RegisterInput{Username: username, Email: emailAddr, Password: password})
		if err != nil {
			return err
		}
		c.userID, c.token = res.User.ID, res.Token
		fmt.Fprintf(c.out, "Cuenta creada (%s). Sesion valida hasta %s\n", res.User.ID, res.ExpiresAt.Format(time.RFC3339))
	case "2":
		emailAddr, _ := c.prompt("Email: ")
		password, _ := c.prompt("Password: ")
		sess, err := c.auth.Login(ctx, emailAddr, password)
		if err != nil {
			return err
		}
		c.userID, c.token = sess.User.ID, sess.Token
		fmt.Fprintf(c.out, "Login ok. Token: %s\n", sess.Token)
	case "3":
		if err := c.auth.SendVerifyOTP(ctx, c.userID); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "OTP enviado.")
	case "4":
		code, _ := c.prompt("OTP: ")
		if err := c.auth.VerifyEmail(ctx, c.userID, code); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Cuenta verificada.")
	case "5":
		emailAddr, _ := c.prompt("Email: ")
		if err := c.auth.SendResetOTP(ctx, emailAddr); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "OTP de reset enviado.")
	case "6":
		emailAddr, _ := c.prompt("Email: ")
		code, _ := c.prompt("OTP: ")
		password, _ := c.prompt("Nuevo password: ")
		if err := c.auth.ResetPassword(ctx, emailAddr, code, password); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Password actualizado.")
	case "7":
		profile, err := c.users.GetUserData(ctx, c.userID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Nombre: %s | Verificado: %t\n", profile.Name, profile.IsAccountVerified)
	case "8":
		c.auth.Logout(ctx, c.token)
		c.userID, c.token = "", ""
		fmt.Fprintln(c.out, "Sesion cerrada.")
	default:
		fmt.Fprintln(c.out, "Opcion invalida.")
	}
	return nil
}

func (c *console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
