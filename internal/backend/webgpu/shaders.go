//go:build windows

package webgpu

// WGSL shader sources for the element-wise complex kernels.
// WGSL has no 64-bit floats, so complex values travel as vec2<f32>.
//
// Every kernel is dispatched on a 2D grid of workgroups so large signals
// stay under the 65535 workgroups-per-dimension limit; row_stride is the
// number of invocations in one grid row.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// maxWorkgroupsPerDim is the WebGPU limit on workgroups along one dimension.
const maxWorkgroupsPerDim = 65535

// complexMulShader multiplies x by a complex filter broadcast over the batch.
const complexMulShader = `
@group(0) @binding(0) var<storage, read> x: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read> kernel: array<vec2<f32>>;
@group(0) @binding(2) var<storage, read_write> result: array<vec2<f32>>;

struct Params {
    size: u32,
    filter_size: u32,
    row_stride: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let idx = gid.x + gid.y * params.row_stride;
    if (idx < params.size) {
        let a = x[idx];
        let f = kernel[idx % params.filter_size];
        result[idx] = vec2<f32>(a.x * f.x - a.y * f.y, a.x * f.y + a.y * f.x);
    }
}
`

// gainMulShader multiplies x by a real filter broadcast over the batch.
const gainMulShader = `
@group(0) @binding(0) var<storage, read> x: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read> kernel: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<vec2<f32>>;

struct Params {
    size: u32,
    filter_size: u32,
    row_stride: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let idx = gid.x + gid.y * params.row_stride;
    if (idx < params.size) {
        result[idx] = x[idx] * kernel[idx % params.filter_size];
    }
}
`

// modulusShader computes |x| for complex x.
const modulusShader = `
@group(0) @binding(0) var<storage, read> x: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    filter_size: u32,
    row_stride: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let idx = gid.x + gid.y * params.row_stride;
    if (idx < params.size) {
        result[idx] = length(x[idx]);
    }
}
`

// modulusRotationShader computes sqrt(acc^2 + |x|^2).
const modulusRotationShader = `
@group(0) @binding(0) var<storage, read> x: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read> acc: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    filter_size: u32,
    row_stride: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let idx = gid.x + gid.y * params.row_stride;
    if (idx < params.size) {
        let a = acc[idx];
        let v = x[idx];
        result[idx] = sqrt(a * a + dot(v, v));
    }
}
`
