// Package isf converts Interactive Shader Format files to WGSL.
//
// An ISF file is a GLSL fragment shader prefixed with a JSON metadata block
// inside a comment. The block's INPUTS array drives the binding layout:
// each input maps through a fixed type table (float, bool, long/integer,
// point2D, color, image, audio, audioFFT) and image-like inputs become
// texture/sampler binding pairs. TIME and RENDERSIZE are always declared.
// The GLSL body is converted through the glsl package after ISF builtins
// (isf_FragNormCoord, IMG_NORM_PIXEL, ...) are rewritten.
package isf
