// Package presets loads the quick-launch presets the pages offer: sample
// lead titles, design vibes, and order configurations. They come from an
// optional presets.lua in the data dir so teams can tailor them; absent
// a script, built-in defaults apply.
package presets

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

type Order struct {
	Zip   string
	Qty   int
	SKU   string
	Label string
}

type Presets struct {
	Leads  []string
	Vibes  []string
	Orders []Order
}

// Default returns the built-in presets.
func Default() *Presets {
	return &Presets{
		Leads: []string{
			"MIT Robotics Team Wins National Championship",
			"Stanford Debate Team wins championship",
			"UCLA Soccer Club fundraiser",
		},
		Vibes: []string{
			"Retro 80s neon with bold typography",
			"Modern minimalist, clean lines",
			"Vintage collegiate classic",
			"Streetwear urban graffiti style",
			"Nature-inspired earthy tones",
		},
		Orders: []Order{
			{Zip: "10001", Qty: 100, SKU: "CREW-NECK-WHITE-M", Label: "🗽 NYC - 100 White Tees"},
			{Zip: "94043", Qty: 250, SKU: "HOODIE-BLACK-L", Label: "🌉 Bay Area - 250 Hoodies"},
			{Zip: "78701", Qty: 50, SKU: "POLO-NAVY-S", Label: "🤠 Austin - 50 Polos"},
			{Zip: "33101", Qty: 200, SKU: "TANK-TOP-RED-M", Label: "🌴 Miami - 200 Tanks"},
		},
	}
}

// Load reads a presets script. The script runs in a sandboxed
// interpreter and may define three globals: leads and vibes as arrays of
// strings, and orders as an array of {zip, qty, sku, label} tables.
// Globals the script omits keep their defaults. A missing file returns
// the defaults.
func Load(path string) (*Presets, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)

	if err := L.DoString(string(script)); err != nil {
		return nil, fmt.Errorf("failed to run presets script: %w", err)
	}

	p := Default()
	if leads, ok := stringList(L.GetGlobal("leads")); ok {
		p.Leads = leads
	}
	if vibes, ok := stringList(L.GetGlobal("vibes")); ok {
		p.Vibes = vibes
	}
	if orders, ok := orderList(L.GetGlobal("orders")); ok {
		p.Orders = orders
	}
	return p, nil
}

// openSafeLibs loads only the libraries a data script needs. No io, no
// os, no loading of further code.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("print", lua.LNil)

	lua.OpenTable(L)
	lua.OpenString(L)
}

func stringList(v lua.LValue) ([]string, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, false
	}
	var out []string
	tbl.ForEach(func(_, item lua.LValue) {
		if s, ok := item.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out, len(out) > 0
}

func orderList(v lua.LValue) ([]Order, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, false
	}
	var out []Order
	tbl.ForEach(func(_, item lua.LValue) {
		entry, ok := item.(*lua.LTable)
		if !ok {
			return
		}
		order := Order{
			Zip:   lua.LVAsString(entry.RawGetString("zip")),
			SKU:   lua.LVAsString(entry.RawGetString("sku")),
			Label: lua.LVAsString(entry.RawGetString("label")),
			Qty:   int(lua.LVAsNumber(entry.RawGetString("qty"))),
		}
		if order.Zip != "" && order.SKU != "" {
			out = append(out, order)
		}
	})
	return out, len(out) > 0
}
