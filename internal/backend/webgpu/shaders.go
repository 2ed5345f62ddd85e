//go:build windows

package webgpu

// WGSL compute shaders. Elements are moved as one or two u32 words so a
// single kernel covers every 4- and 8-byte dtype. Parameters live in a
// storage array<i32>; see plan.go for the layout.

// gatherShader copies result[i] = src[srcOffset + Σ coord·srcStrides + indices[Σ coord·idxStrides]·axisStride].
const gatherShader = `
@group(0) @binding(0) var<storage, read> src: array<u32>;
@group(0) @binding(1) var<storage, read> indices: array<i32>;
@group(0) @binding(2) var<storage, read_write> result: array<u32>;
@group(0) @binding(3) var<storage, read> params: array<i32>;

const MAX_RANK: u32 = 8u;
const HEADER: u32 = 5u;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= u32(params[0])) {
        return;
    }
    let rank = u32(params[1]);
    let words = u32(params[2]);

    var rem = i32(idx);
    var srcPos = params[3];
    var idxPos = 0;
    for (var k = 0u; k < rank; k = k + 1u) {
        let axis = rank - 1u - k;
        let dim = params[HEADER + axis];
        let coord = rem % dim;
        rem = rem / dim;
        srcPos = srcPos + coord * params[HEADER + MAX_RANK + axis];
        idxPos = idxPos + coord * params[HEADER + 2u * MAX_RANK + axis];
    }
    srcPos = srcPos + indices[idxPos] * params[4];

    for (var w = 0u; w < words; w = w + 1u) {
        result[idx * words + w] = src[u32(srcPos) + w];
    }
}
`

// selectShader copies result[i] = cond[i] != 0 ? x[i] : y[i] over broadcast strides.
const selectShader = `
@group(0) @binding(0) var<storage, read> cond: array<u32>;
@group(0) @binding(1) var<storage, read> x: array<u32>;
@group(0) @binding(2) var<storage, read> y: array<u32>;
@group(0) @binding(3) var<storage, read_write> result: array<u32>;
@group(0) @binding(4) var<storage, read> params: array<i32>;

const MAX_RANK: u32 = 8u;
const HEADER: u32 = 5u;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= u32(params[0])) {
        return;
    }
    let rank = u32(params[1]);
    let words = u32(params[2]);

    var rem = i32(idx);
    var condPos = 0;
    var xPos = params[3];
    var yPos = params[4];
    for (var k = 0u; k < rank; k = k + 1u) {
        let axis = rank - 1u - k;
        let dim = params[HEADER + axis];
        let coord = rem % dim;
        rem = rem / dim;
        condPos = condPos + coord * params[HEADER + MAX_RANK + axis];
        xPos = xPos + coord * params[HEADER + 2u * MAX_RANK + axis];
        yPos = yPos + coord * params[HEADER + 3u * MAX_RANK + axis];
    }

    for (var w = 0u; w < words; w = w + 1u) {
        if (cond[condPos] != 0u) {
            result[idx * words + w] = x[u32(xPos) + w];
        } else {
            result[idx * words + w] = y[u32(yPos) + w];
        }
    }
}
`
