//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/pixelart/go/api"
	"github.com/voxelsplace/pixelart/go/pixelart"
)

// optionsFromJS reads an optional options object:
// {useNodes, reuseMaterials, groupName, cubeName, meshName, materialName}.
func optionsFromJS(v js.Value) pixelart.Options {
	opts := pixelart.DefaultOptions()
	if v.IsUndefined() || v.IsNull() {
		return opts
	}
	if b := v.Get("useNodes"); b.Type() == js.TypeBoolean {
		opts.UseNodes = b.Bool()
	}
	if b := v.Get("reuseMaterials"); b.Type() == js.TypeBoolean {
		opts.ReuseMaterials = b.Bool()
	}
	for key, dst := range map[string]*string{
		"groupName":    &opts.GroupName,
		"cubeName":     &opts.CubeName,
		"meshName":     &opts.MeshName,
		"materialName": &opts.MaterialName,
	} {
		if s := v.Get(key); s.Type() == js.TypeString {
			*dst = s.String()
		}
	}
	return opts
}

// pixelart2glb(name, Uint8Array, [options]) -> Uint8Array | error string
func pixelart2glb(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing file name or image bytes")
	}
	name := args[0].String()
	buf := make([]byte, args[1].Get("length").Int())
	js.CopyBytesToGo(buf, args[1])
	opts := pixelart.DefaultOptions()
	if len(args) > 2 {
		opts = optionsFromJS(args[2])
	}
	out, err := api.PixelArtToGLB(name, buf, opts)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

// validatePixelArtNames([options]) -> "" | error string
func validatePixelArtNames(this js.Value, args []js.Value) any {
	opts := pixelart.DefaultOptions()
	if len(args) > 0 {
		opts = optionsFromJS(args[0])
	}
	if err := api.ValidateNames(opts); err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf("")
}

func main() {
	js.Global().Set("pixelart2glb", js.FuncOf(pixelart2glb))
	js.Global().Set("validatePixelArtNames", js.FuncOf(validatePixelArtNames))
	select {}
}
