// Command cli is a small operator tool for the core: it registers
// currencies, opens accounts and moves money against the same database
// the server uses.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/altinbank/core/infra"
	infrarepo "github.com/altinbank/core/infra/repository"
	"github.com/altinbank/core/pkg/config"
	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/engine"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/money"
	accountsvc "github.com/altinbank/core/pkg/service/account"
	currencysvc "github.com/altinbank/core/pkg/service/currency"
	usersvc "github.com/altinbank/core/pkg/service/user"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register-currency <code> <name>")
	fmt.Println("  register-user <username> <email> <password>")
	fmt.Println("  open-account <user_id> <balance> <currency>")
	fmt.Println("  balance <account_id>")
	fmt.Println("  debit <account_id> <amount> <currency>")
	fmt.Println("  credit <account_id> <amount> <currency>")
	fmt.Println("  transfer <from_id> <to_id> <amount> <currency>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		failColor.Println("Error:", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg, err := config.Load(logger)
	if err != nil {
		return err
	}
	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return err
	}

	uow := infrarepo.NewUoW(db)
	converter := exchange.NewConverter(exchange.NewStaticSource(), logger)
	ctx := context.Background()

	switch cmd {
	case "register-currency":
		if len(args) < 2 {
			return fmt.Errorf("usage: register-currency <code> <name>")
		}
		svc := currencysvc.New(uow, converter, logger)
		cur, err := svc.Register(ctx, currency.Code(args[0]), args[1])
		if err != nil {
			return err
		}
		okColor.Printf("Registered %s (%s)\n", cur.Code, cur.Name)

	case "register-user":
		if len(args) < 3 {
			return fmt.Errorf("usage: register-user <username> <email> <password>")
		}
		svc := usersvc.New(uow, logger)
		u, err := svc.Register(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		okColor.Printf("User %s created: %s\n", u.Username, u.ID)

	case "open-account":
		if len(args) < 3 {
			return fmt.Errorf("usage: open-account <user_id> <balance> <currency>")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		balance, err := parseMoney(args[1], args[2])
		if err != nil {
			return err
		}
		svc := accountsvc.New(uow, logger)
		acc, err := svc.Open(ctx, userID, balance)
		if err != nil {
			return err
		}
		okColor.Printf("Account opened: %s, balance %s\n", acc.ID, acc.Balance)

	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("usage: balance <account_id>")
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		svc := accountsvc.New(uow, logger)
		acc, err := svc.Get(ctx, accountID)
		if err != nil {
			return err
		}
		okColor.Printf("Account %s: %s\n", acc.ID, acc.Balance)

	case "debit", "credit":
		if len(args) < 3 {
			return fmt.Errorf("usage: %s <account_id> <amount> <currency>", cmd)
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		amount, err := parseMoney(args[1], args[2])
		if err != nil {
			return err
		}
		intent := transaction.Intent{Amount: amount}
		if cmd == "debit" {
			intent.Type = transaction.TypeDebit
			intent.FromAccountID = &accountID
		} else {
			intent.Type = transaction.TypeCredit
			intent.ToAccountID = &accountID
		}
		tx, err := engine.New(uow, converter, logger).Submit(ctx, intent)
		if err != nil {
			return err
		}
		okColor.Printf("Recorded %s %s: %s\n", tx.Type, tx.Amount, tx.ID)

	case "transfer":
		if len(args) < 4 {
			return fmt.Errorf("usage: transfer <from_id> <to_id> <amount> <currency>")
		}
		fromID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		toID, err := uuid.Parse(args[1])
		if err != nil {
			return err
		}
		amount, err := parseMoney(args[2], args[3])
		if err != nil {
			return err
		}
		tx, err := engine.New(uow, converter, logger).Submit(ctx, transaction.Intent{
			Type:          transaction.TypeTransfer,
			Amount:        amount,
			FromAccountID: &fromID,
			ToAccountID:   &toID,
		})
		if err != nil {
			return err
		}
		okColor.Printf("Recorded TRANSFER %s: %s\n", tx.Amount, tx.ID)

	default:
		usage()
	}
	return nil
}

func parseMoney(amount, code string) (money.Money, error) {
	parsed, err := currency.ParseCode(code)
	if err != nil {
		return money.Money{}, err
	}
	return money.NewFromString(amount, parsed)
}
