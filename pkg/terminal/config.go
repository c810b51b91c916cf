package terminal

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-delve/tdep/pkg/config"
	"github.com/go-delve/tdep/pkg/record"
)

type configureIterator struct {
	cfgValue reflect.Value
	cfgType  reflect.Type
	i        int
}

func iterateConfiguration(conf *config.Config) *configureIterator {
	cfgValue := reflect.ValueOf(conf).Elem()
	cfgType := cfgValue.Type()

	return &configureIterator{cfgValue, cfgType, -1}
}

func (it *configureIterator) Next() bool {
	it.i++
	return it.i < it.cfgValue.NumField()
}

func (it *configureIterator) Field() (name string, field reflect.Value) {
	name = it.cfgType.Field(it.i).Tag.Get("yaml")
	if comma := strings.Index(name, ","); comma >= 0 {
		name = name[:comma]
	}
	field = it.cfgValue.Field(it.i)
	return
}

func configureFindFieldByName(conf *config.Config, name string) reflect.Value {
	it := iterateConfiguration(conf)
	for it.Next() {
		fieldName, field := it.Field()
		if fieldName == name {
			return field
		}
	}
	return reflect.ValueOf(nil)
}

// ConfigureList writes every configuration key of conf and its value to w.
func ConfigureList(w io.Writer, conf *config.Config) error {
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 8, 1, ' ', 0)

	it := iterateConfiguration(conf)
	for it.Next() {
		fieldName, field := it.Field()
		if fieldName == "" {
			continue
		}

		switch {
		case field.Kind() == reflect.Ptr && field.IsNil():
			fmt.Fprintf(tw, "%s\t<not defined>\n", fieldName)
		case field.Kind() == reflect.Ptr:
			fmt.Fprintf(tw, "%s\t%v\n", fieldName, field.Elem())
		case field.Kind() == reflect.String && field.String() == "":
			fmt.Fprintf(tw, "%s\t<not defined>\n", fieldName)
		default:
			fmt.Fprintf(tw, "%s\t%v\n", fieldName, field)
		}
	}
	return tw.Flush()
}

// ConfigureSet sets the configuration key cfgname of conf to rest. An
// empty rest resets the key.
func ConfigureSet(conf *config.Config, cfgname, rest string) error {
	field := configureFindFieldByName(conf, cfgname)
	if !field.CanAddr() {
		return fmt.Errorf("%q is not a configuration parameter", cfgname)
	}

	if rest == "" {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	simpleArg := func(typ reflect.Type) (reflect.Value, error) {
		switch typ.Kind() {
		case reflect.Int:
			n, err := strconv.Atoi(rest)
			if err != nil {
				return reflect.ValueOf(nil), fmt.Errorf("argument to %q must be a number", cfgname)
			}
			if n < 0 {
				return reflect.ValueOf(nil), fmt.Errorf("argument to %q must be a number greater than zero", cfgname)
			}
			return reflect.ValueOf(&n), nil
		case reflect.Bool:
			v := rest == "true"
			return reflect.ValueOf(&v), nil
		case reflect.String:
			v := rest
			return reflect.ValueOf(&v), nil
		default:
			return reflect.ValueOf(nil), fmt.Errorf("unsupported type for configuration key %q", cfgname)
		}
	}

	old := reflect.New(field.Type()).Elem()
	old.Set(field)

	if field.Kind() == reflect.Ptr {
		val, err := simpleArg(field.Type().Elem())
		if err != nil {
			return err
		}
		field.Set(val)
	} else {
		val, err := simpleArg(field.Type())
		if err != nil {
			return err
		}
		field.Set(val.Elem())
	}

	if err := validateConfig(conf); err != nil {
		field.Set(old)
		return err
	}
	return nil
}

func validateConfig(conf *config.Config) error {
	if _, err := conf.ABI(); err != nil {
		return err
	}
	if _, _, err := conf.XCR0(); err != nil {
		return err
	}
	if _, err := record.ParsePolicy(conf.UnknownSyscall); err != nil {
		return err
	}
	switch strings.ToLower(conf.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q (must be auto, always or never)", conf.Color)
	}
	return nil
}
