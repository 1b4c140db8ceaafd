package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"readlytics/internal/models"
)

// FilterParser parses and evaluates OData-style $filter expressions
// over joined article rows. Supported fields: title, author_id,
// author_name, article_reads, date.
type FilterParser struct{}

type FilterExpression struct {
	Operator  string
	Field     string
	Value     string
	Left      *FilterExpression
	Right     *FilterExpression
	Function  string
	Arguments []string
}

func NewFilterParser() *FilterParser {
	return &FilterParser{}
}

func (p *FilterParser) Parse(filter string) (*FilterExpression, error) {
	if filter == "" {
		return nil, nil
	}

	return p.parseExpression(strings.TrimSpace(filter))
}

func (p *FilterParser) parseExpression(expr string) (*FilterExpression, error) {
	expr = strings.TrimSpace(expr)

	// Check for logical operators (and, or) - case insensitive
	lowerExpr := strings.ToLower(expr)
	if strings.Contains(lowerExpr, " and ") {
		return p.parseLogicalOperator(expr, "and")
	}
	if strings.Contains(lowerExpr, " or ") {
		return p.parseLogicalOperator(expr, "or")
	}

	// Check for comparison operators
	for _, op := range []string{"eq", "ne", "gt", "ge", "lt", "le"} {
		if strings.Contains(expr, " "+op+" ") {
			return p.parseComparison(expr, op)
		}
	}

	// Check for functions
	for _, fn := range []string{"startswith", "endswith", "contains"} {
		if strings.HasPrefix(expr, fn+"(") {
			return p.parseFunction(expr, fn)
		}
	}

	return nil, fmt.Errorf("unable to parse expression: %s", expr)
}

func (p *FilterParser) parseLogicalOperator(expr string, op string) (*FilterExpression, error) {
	// Find the position of the logical operator (case insensitive)
	lowerExpr := strings.ToLower(expr)
	opIndex := strings.Index(lowerExpr, " "+op+" ")
	if opIndex == -1 {
		return nil, fmt.Errorf("invalid logical expression: %s", expr)
	}

	left, err := p.parseExpression(expr[:opIndex])
	if err != nil {
		return nil, err
	}

	right, err := p.parseExpression(expr[opIndex+len(" "+op+" "):])
	if err != nil {
		return nil, err
	}

	return &FilterExpression{
		Operator: op,
		Left:     left,
		Right:    right,
	}, nil
}

func (p *FilterParser) parseComparison(expr string, op string) (*FilterExpression, error) {
	parts := strings.Split(expr, " "+op+" ")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid comparison expression: %s", expr)
	}

	field := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	// Remove quotes from value
	value = strings.Trim(value, "'\"")

	return &FilterExpression{
		Operator: op,
		Field:    field,
		Value:    value,
	}, nil
}

func (p *FilterParser) parseFunction(expr string, funcName string) (*FilterExpression, error) {
	// Extract arguments from function call
	// e.g., contains(title, 'tax') -> title, 'tax'
	argsStart := strings.Index(expr, "(")
	argsEnd := strings.LastIndex(expr, ")")

	if argsStart == -1 || argsEnd == -1 {
		return nil, fmt.Errorf("invalid function call: %s", expr)
	}

	args := p.parseFunctionArguments(expr[argsStart+1 : argsEnd])

	if len(args) != 2 {
		return nil, fmt.Errorf("function %s expects 2 arguments, got %d", funcName, len(args))
	}

	return &FilterExpression{
		Function:  funcName,
		Field:     strings.TrimSpace(args[0]),
		Value:     strings.Trim(args[1], "'\""),
		Arguments: args,
	}, nil
}

func (p *FilterParser) parseFunctionArguments(argsStr string) []string {
	var args []string
	var currentArg strings.Builder
	var inQuotes bool
	var quoteChar byte

	for i := 0; i < len(argsStr); i++ {
		char := argsStr[i]

		if !inQuotes && (char == '\'' || char == '"') {
			inQuotes = true
			quoteChar = char
			continue
		}

		if inQuotes && char == quoteChar {
			inQuotes = false
			continue
		}

		if !inQuotes && char == ',' {
			args = append(args, strings.TrimSpace(currentArg.String()))
			currentArg.Reset()
			continue
		}

		currentArg.WriteByte(char)
	}

	// Add the last argument
	if currentArg.Len() > 0 {
		args = append(args, strings.TrimSpace(currentArg.String()))
	}

	return args
}

func (p *FilterParser) Evaluate(expr *FilterExpression, article models.JoinedArticle) (bool, error) {
	if expr == nil {
		return true, nil
	}

	// Handle logical operators
	if expr.Operator == "and" {
		left, err := p.Evaluate(expr.Left, article)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return p.Evaluate(expr.Right, article)
	}

	if expr.Operator == "or" {
		left, err := p.Evaluate(expr.Left, article)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return p.Evaluate(expr.Right, article)
	}

	// Handle comparison operators
	if expr.Operator != "" && expr.Field != "" {
		return p.evaluateComparison(expr, article)
	}

	// Handle functions
	if expr.Function != "" {
		return p.evaluateFunction(expr, article)
	}

	return false, fmt.Errorf("invalid filter expression")
}

func (p *FilterParser) evaluateComparison(expr *FilterExpression, article models.JoinedArticle) (bool, error) {
	fieldValue := fieldValue(expr.Field, article)

	switch expr.Operator {
	case "eq":
		return fieldValue == expr.Value, nil
	case "ne":
		return fieldValue != expr.Value, nil
	case "gt":
		return compareValues(fieldValue, expr.Value) > 0, nil
	case "ge":
		return compareValues(fieldValue, expr.Value) >= 0, nil
	case "lt":
		return compareValues(fieldValue, expr.Value) < 0, nil
	case "le":
		return compareValues(fieldValue, expr.Value) <= 0, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator: %s", expr.Operator)
	}
}

func (p *FilterParser) evaluateFunction(expr *FilterExpression, article models.JoinedArticle) (bool, error) {
	fieldValue := strings.ToLower(fieldValue(expr.Field, article))
	searchValue := strings.ToLower(expr.Value)

	switch expr.Function {
	case "startswith":
		return strings.HasPrefix(fieldValue, searchValue), nil
	case "endswith":
		return strings.HasSuffix(fieldValue, searchValue), nil
	case "contains":
		return strings.Contains(fieldValue, searchValue), nil
	default:
		return false, fmt.Errorf("unsupported function: %s", expr.Function)
	}
}

// fieldValue renders a row field as a comparable string. Nil fields
// render as "" so they compare less than any concrete value.
func fieldValue(field string, article models.JoinedArticle) string {
	switch strings.ToLower(field) {
	case "title":
		if article.Title == nil {
			return ""
		}
		return *article.Title
	case "author_id":
		return article.AuthorID
	case "author_name":
		if article.AuthorName == nil {
			return ""
		}
		return *article.AuthorName
	case "article_reads":
		if article.ArticleReads == nil {
			return ""
		}
		return strconv.FormatInt(*article.ArticleReads, 10)
	case "date":
		if article.Date == nil {
			return ""
		}
		return article.Date.Format(time.RFC3339)
	default:
		return ""
	}
}

// compareValues orders two rendered field values: numerically when both
// parse as integers (reads comparisons), as timestamps when both parse
// as RFC3339, otherwise as case-folded strings. Empty (nil) values
// order before everything.
func compareValues(a, b string) int {
	if a == "" || b == "" {
		return strings.Compare(a, b)
	}

	numA, errA := strconv.ParseInt(a, 10, 64)
	numB, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case numA < numB:
			return -1
		case numA > numB:
			return 1
		default:
			return 0
		}
	}

	timeA, errA2 := time.Parse(time.RFC3339, a)
	timeB, errB2 := time.Parse(time.RFC3339, b)
	if errA2 == nil && errB2 == nil {
		if timeA.Before(timeB) {
			return -1
		}
		if timeA.After(timeB) {
			return 1
		}
		return 0
	}

	// Fallback to string comparison
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
