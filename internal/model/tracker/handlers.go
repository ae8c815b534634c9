package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
	"github.com/pranusri1903/expense-tracker/internal/model/report"
	"github.com/pranusri1903/expense-tracker/internal/model/session"
	"github.com/pranusri1903/expense-tracker/internal/model/view"
)

const (
	dontUnderstandMessage = "I don't understand that. Try /help"
	registeredMessage     = "Registration successful! You can now log in."
	loggedOutMessage      = "Logged out. See you!"
	addedMessage          = "Expense added!"
	deletedMessage        = "Expense deleted."
	noExpensesMessage     = "You have no expenses yet"

	notLoggedInMessage      = "You need to log in first"
	alreadyLoggedInMessage  = "You are already logged in. Log out first"
	incorrectUsageMessage   = "That is an incorrect command usage"
	incorrectDateMessage    = "The date is incorrect. Should be MM/dd/yyyy"
	incorrectAmountMessage  = "The amount is incorrect. Should be a non-negative number"
	emptyDescriptionMessage = "Description cannot be empty"
	duplicateUserMessage    = "Username already exists. Please choose another one"
	emptyCredentialMessage  = "Username and password cannot be empty"
	badCredentialsMessage   = "Invalid username or password"
	unknownRecordMessage    = "No expense with that number"
	unknownCategoryMessage  = "Unknown category. Try /categories"
	unknownPeriodMessage    = "Unknown period. Use week, month or year"
	cannotSaveMessage       = "Could not save your data. It will be retried on the next change"

	totalLabel = "TOTAL"
)

const (
	registerCommand   = "/register"
	loginCommand      = "/login"
	logoutCommand     = "/logout"
	addCommand        = "/add"
	deleteCommand     = "/delete"
	listCommand       = "/list"
	summaryCommand    = "/summary"
	categoriesCommand = "/categories"
	helpCommand       = "/help"
)

const helpMessage = `Commands:
  /register <username> <password>
  /login <username> <password>
  /logout
  /add <MM/dd/yyyy> <category> <amount> <description>
  /delete <number>
  /list [category|All] [date-desc|date-asc|amount-desc|category]
  /summary [week|month|year]
  /categories
  /help`

type sessionController interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	ActiveUser() (string, bool)
}

type recordStore interface {
	Add(ctx context.Context, rec expense.Record) (expense.Record, error)
	Delete(ctx context.Context, id int64) (bool, error)
	All() []expense.Record
}

type handler func(ctx context.Context, arg string) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	session     sessionController
	store       recordStore
}

func newHandler(session sessionController, store recordStore) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		session:     session,
		store:       store,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleCommand(ctx context.Context, text string) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg)
	}
	return dontUnderstandMessage, nil
}

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", 2)

	if len(split) == 2 {
		return split[0], strings.TrimSpace(split[1])
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[registerCommand] = s.handleRegister
	m[loginCommand] = s.handleLogin
	m[logoutCommand] = s.handleLogout
	m[addCommand] = s.handleAdd
	m[deleteCommand] = s.handleDelete
	m[listCommand] = s.handleList
	m[summaryCommand] = s.handleSummary
	m[categoriesCommand] = s.handleCategories
	m[helpCommand] = s.handleHelp

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleRegister(ctx context.Context, arg string) (string, error) {
	if _, ok := s.session.ActiveUser(); ok {
		return alreadyLoggedInMessage, nil
	}
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}

	err := s.session.Register(ctx, args[0], args[1])
	switch {
	case err == nil:
		return registeredMessage, nil
	case errors.Is(err, session.ErrDuplicateUsername):
		return duplicateUserMessage, nil
	case errors.Is(err, session.ErrEmptyCredential):
		return emptyCredentialMessage, nil
	}
	return "", errors.Wrap(err, "handle register")
}

func (s *HandlerService) handleLogin(ctx context.Context, arg string) (string, error) {
	if _, ok := s.session.ActiveUser(); ok {
		return alreadyLoggedInMessage, nil
	}
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}

	err := s.session.Login(ctx, args[0], args[1])
	switch {
	case err == nil:
		return fmt.Sprintf("Welcome, %s!", args[0]), nil
	case errors.Is(err, session.ErrInvalidCredentials):
		return badCredentialsMessage, nil
	}
	return "", errors.Wrap(err, "handle login")
}

func (s *HandlerService) handleLogout(ctx context.Context, _ string) (string, error) {
	if _, ok := s.session.ActiveUser(); !ok {
		return notLoggedInMessage, nil
	}
	if err := s.session.Logout(ctx); err != nil {
		return "", errors.Wrap(err, "handle logout")
	}
	return loggedOutMessage, nil
}

func (s *HandlerService) handleAdd(ctx context.Context, arg string) (string, error) {
	if _, ok := s.session.ActiveUser(); !ok {
		return notLoggedInMessage, nil
	}
	args := strings.Fields(arg)
	if len(args) < 4 {
		return incorrectUsageMessage, nil
	}

	date, err := expense.ParseDate(args[0])
	if err != nil {
		return incorrectDateMessage, nil
	}
	category, err := expense.ParseCategory(args[1])
	if err != nil {
		return unknownCategoryMessage, nil
	}
	amount, err := expense.ParseAmount(args[2])
	if err != nil {
		return incorrectAmountMessage, nil
	}
	description := strings.Join(args[3:], " ")

	rec, err := expense.New(date, category, description, amount)
	if err != nil {
		return emptyDescriptionMessage, nil
	}

	if _, err = s.store.Add(ctx, rec); err != nil {
		return cannotSaveMessage, errors.Wrap(err, "handle add")
	}
	return addedMessage, nil
}

func (s *HandlerService) handleDelete(ctx context.Context, arg string) (string, error) {
	if _, ok := s.session.ActiveUser(); !ok {
		return notLoggedInMessage, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return incorrectUsageMessage, nil
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return cannotSaveMessage, errors.Wrap(err, "handle delete")
	}
	if !deleted {
		return unknownRecordMessage, nil
	}
	return deletedMessage, nil
}

func (s *HandlerService) handleList(_ context.Context, arg string) (string, error) {
	if _, ok := s.session.ActiveUser(); !ok {
		return notLoggedInMessage, nil
	}
	category, mode, msg := parseListArgs(arg)
	if msg != "" {
		return msg, nil
	}

	records := s.store.All()
	if len(records) == 0 {
		return noExpensesMessage, nil
	}

	return formatView(view.Build(records, category, mode)), nil
}

// parseListArgs reads up to two optional tokens: a category (or "All")
// and a sort mode, in either order.
func parseListArgs(arg string) (category string, mode view.SortMode, msg string) {
	category = expense.FilterAll
	mode = view.DateDescending

	args := strings.Fields(arg)
	if len(args) > 2 {
		return "", 0, incorrectUsageMessage
	}
	seenCategory, seenMode := false, false
	for _, token := range args {
		if m, err := view.ParseSortMode(token); err == nil {
			if seenMode {
				return "", 0, incorrectUsageMessage
			}
			mode, seenMode = m, true
			continue
		}
		if seenCategory {
			return "", 0, incorrectUsageMessage
		}
		if token != expense.FilterAll {
			if _, err := expense.ParseCategory(token); err != nil {
				return "", 0, unknownCategoryMessage
			}
		}
		category, seenCategory = token, true
	}
	return category, mode, ""
}

func (s *HandlerService) handleSummary(_ context.Context, arg string) (string, error) {
	if _, ok := s.session.ActiveUser(); !ok {
		return notLoggedInMessage, nil
	}

	records, err := report.FilterPeriod(s.store.All(), strings.TrimSpace(arg))
	if err != nil {
		return unknownPeriodMessage, nil
	}

	summary := report.BuildSummary(records)
	if len(summary.Rows) == 0 {
		return noExpensesMessage, nil
	}
	return formatSummary(summary), nil
}

func (s *HandlerService) handleCategories(_ context.Context, _ string) (string, error) {
	names := make([]string, 0, len(expense.Categories))
	for _, c := range expense.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", "), nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ string) (string, error) {
	return helpMessage, nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string) (string, error) {
	return dontUnderstandMessage, nil
}
