package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/betterhouse/syndic/internal/copro"
)

// Problem descreve uma violação encontrada no documento.
type Problem struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError agrega as violações de um documento rejeitado.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "store: documento inválido"
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return "store: documento inválido: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, rule, message string) {
	e.Problems = append(e.Problems, Problem{Field: field, Rule: rule, Message: message})
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
			return copro.IsValidDocumentType(copro.DocumentType(fl.Field().String()))
		})
		validate = v
	})
	return validate
}

// Decode lê, valida e normaliza um documento JSON de dados.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("store: json inválido: %w", err)
	}
	if err := Validate(&ds); err != nil {
		return nil, err
	}
	ds.normalize()
	return &ds, nil
}

// DecodeBytes é um atalho para Decode sobre um buffer.
func DecodeBytes(payload []byte) (*Dataset, error) {
	return Decode(bytes.NewReader(payload))
}

// Validate aplica as regras de struct e as referências cruzadas.
func Validate(ds *Dataset) error {
	verr := &ValidationError{}

	if err := validatorInstance().Struct(ds); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("store: validação: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(trimNamespace(fe.Namespace()), fe.Tag(), describe(fe))
		}
	}

	checkReferences(ds, verr)

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// checkReferences rejeita ids duplicados e resoluções fora da assembleia.
// Chaves estrangeiras ausentes não rejeitam o documento; ver danglingReferences.
func checkReferences(ds *Dataset, verr *ValidationError) {
	users := make(map[string]struct{}, len(ds.Users))
	for i, u := range ds.Users {
		if _, dup := users[u.ID]; dup {
			verr.add(fmt.Sprintf("users[%d].id", i), "unique", "id duplicado "+u.ID)
		}
		users[u.ID] = struct{}{}
	}

	buildings := make(map[string]struct{}, len(ds.Buildings))
	for i, b := range ds.Buildings {
		if _, dup := buildings[b.ID]; dup {
			verr.add(fmt.Sprintf("buildings[%d].id", i), "unique", "id duplicado "+b.ID)
		}
		buildings[b.ID] = struct{}{}
	}

	lots := make(map[string]struct{}, len(ds.Lots))
	for i, l := range ds.Lots {
		if _, dup := lots[l.ID]; dup {
			verr.add(fmt.Sprintf("lots[%d].id", i), "unique", "id duplicado "+l.ID)
		}
		lots[l.ID] = struct{}{}
	}

	ags := make(map[string]struct{}, len(ds.Assemblies))
	for i, ag := range ds.Assemblies {
		if _, dup := ags[ag.ID]; dup {
			verr.add(fmt.Sprintf("assemblies[%d].id", i), "unique", "id duplicado "+ag.ID)
		}
		ags[ag.ID] = struct{}{}
		for j, res := range ag.Resolutions {
			if res.AGID != ag.ID {
				verr.add(fmt.Sprintf("assemblies[%d].resolutions[%d].ag_id", i, j), "ref", "resolução fora da assembleia "+ag.ID)
			}
		}
		for j, p := range ag.Participants {
			if p.AGID != ag.ID {
				verr.add(fmt.Sprintf("assemblies[%d].participants[%d].ag_id", i, j), "ref", "participante fora da assembleia "+ag.ID)
			}
		}
	}
}

func trimNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "oneof":
		return "valor fora da enumeração: " + fmt.Sprint(fe.Value())
	case "doctype":
		return "tipo de documento desconhecido: " + fmt.Sprint(fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("valor %v fora do limite %s=%s", fe.Value(), fe.Tag(), fe.Param())
	case "email":
		return "email inválido"
	default:
		return "regra " + fe.Tag() + " violada"
	}
}
