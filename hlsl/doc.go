// Package hlsl converts HLSL pixel-shader source to WGSL.
//
// Supported subset: cbuffer blocks with register(bN, spaceM) annotations,
// Texture2D/SamplerState resources, helper functions and an SV_Target entry
// point. Sampler states collapse into each texture's binding pair, matching
// the target language's resource model. Conversion follows the same lenient
// substitution policy as the glsl package.
package hlsl
